package duel

func systemAnimation(game *DuelGame) {
	for _, entityresult := range game.botsView.Get() {
		game.CastWeapon(entityresult.Components[game.weaponComponent]).AdvanceAttackAnimation()
	}
}

package duel

func systemCooldown(game *DuelGame, dt float64) {
	for _, entityresult := range game.botsView.Get() {
		game.CastWeapon(entityresult.Components[game.weaponComponent]).DecrementCooldown(dt)
	}
}

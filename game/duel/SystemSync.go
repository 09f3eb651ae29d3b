package duel

// systemSync refreshes every bot's pose projection from the physics world.
// From here until the next step, reads see this tick's resolved poses.
func systemSync(game *DuelGame) {
	for _, entityresult := range game.botsView.Get() {
		game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent]).Sync()
	}
}

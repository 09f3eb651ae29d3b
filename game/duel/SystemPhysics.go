package duel

// systemPhysics advances the world by one step. The step is where velocities
// become displacement and where the contact callback fires; the pose
// projection stays untouched until systemSync.
func systemPhysics(game *DuelGame, dt float64) {
	game.physicalWorld.Step(dt)
}

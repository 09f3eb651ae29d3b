package duel

// systemVictory is the only place deaths are observed. Both health levels are
// read before deciding, so two bots dropping to zero in the same tick is a
// draw, not a race.
func systemVictory(game *DuelGame) {

	deadA := game.botHealth(0).GetLife() <= 0
	deadB := game.botHealth(1).GetLife() <= 0

	switch {
	case deadA && deadB:
		game.finish(-1)
	case deadA:
		game.finish(1)
	case deadB:
		game.finish(0)
	}
}

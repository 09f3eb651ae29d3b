package match

type _matchstatus string

// MatchStatuses are the lifecycle states of a match. Transitions only move
// forward; a finished match is terminal and a new fight needs a new Match.
var MatchStatuses = struct {
	Waiting   _matchstatus
	Countdown _matchstatus
	Fighting  _matchstatus
	Finished  _matchstatus
}{
	Waiting:   "waiting",
	Countdown: "countdown",
	Fighting:  "fighting",
	Finished:  "finished",
}

func (status _matchstatus) String() string {
	return string(status)
}

func (status _matchstatus) rank() int {
	switch status {
	case MatchStatuses.Waiting:
		return 0
	case MatchStatuses.Countdown:
		return 1
	case MatchStatuses.Fighting:
		return 2
	case MatchStatuses.Finished:
		return 3
	}
	return -1
}

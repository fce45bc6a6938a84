package session

// Phase is the lifecycle stage of a voting session. Phases only move
// forward; every client reacts to the stored phase, never to local
// navigation state.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseVoting    Phase = "voting"
	PhaseResults   Phase = "results"
	PhaseRanking   Phase = "ranking"
	PhaseCompleted Phase = "completed"
)

var phaseOrder = map[Phase]int{
	PhaseWaiting:   0,
	PhaseVoting:    1,
	PhaseResults:   2,
	PhaseRanking:   3,
	PhaseCompleted: 4,
}

// Rank returns the phase's position in the lifecycle, or -1 for an
// unknown phase.
func (p Phase) Rank() int {
	if r, ok := phaseOrder[p]; ok {
		return r
	}
	return -1
}

func (p Phase) Valid() bool { return p.Rank() >= 0 }

// Before reports whether p comes strictly earlier than other.
func (p Phase) Before(other Phase) bool { return p.Rank() < other.Rank() }

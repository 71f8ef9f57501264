package fetch

import "fmt"

// State is the progress of one exchange. It only moves forward.
type State uint8

const (
	StateAwaitingStatusLine State = iota
	StateAwaitingHeaders
	StateReadingBody
	StateDone
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateAwaitingStatusLine:
		return "awaiting-status-line"
	case StateAwaitingHeaders:
		return "awaiting-headers"
	case StateReadingBody:
		return "reading-body"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Terminal reports whether no more events follow.
func (s State) Terminal() bool { return s == StateDone || s == StateErrored }

// advance panics on a backward move, which would mean events were reordered.
func (s *State) advance(next State) {
	if s.Terminal() || next < *s {
		panic(fmt.Sprintf("exchange state cannot move from %s to %s", *s, next))
	}
	*s = next
}

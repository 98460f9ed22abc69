package typewriter

import (
	"errors"
	"time"
)

// Phase identifies which half of the animation cycle is active.
// Exactly one phase is active at a time.
type Phase int

const (
	// PhaseTyping appends one character per tick.
	PhaseTyping Phase = iota
	// PhaseErasing removes one character per tick.
	PhaseErasing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseErasing:
		return "erasing"
	default:
		return "unknown"
	}
}

// Timing holds the four delays of the animation cycle.
type Timing struct {
	Type  time.Duration // delay between typed characters
	Erase time.Duration // delay between erased characters
	Hold  time.Duration // pause on the fully typed role before erasing
	Rest  time.Duration // pause on the empty frame before the next role
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		Type:  100 * time.Millisecond,
		Erase: 50 * time.Millisecond,
		Hold:  2 * time.Second,
		Rest:  500 * time.Millisecond,
	}
}

// DefaultRoles is the stock role sequence.
var DefaultRoles = []string{
	"Data Scientist",
	"Machine Learning Researcher",
	"Problem Solver",
}

// ErrNoRoles is returned when an animator is created with an empty sequence.
var ErrNoRoles = errors.New("typewriter: role sequence must not be empty")

// Animator is the animation state. It is a value: Advance returns the next
// state rather than mutating in place, so a stale copy held by an old
// scheduler tick is harmless.
type Animator struct {
	roles  [][]rune
	timing Timing

	roleIndex int
	charIndex int
	phase     Phase
}

// New creates an animator over the given roles with default timing.
// The initial state is typing the first role with an empty frame.
func New(roles []string) (Animator, error) {
	return NewWithTiming(roles, DefaultTiming())
}

// NewWithTiming creates an animator with custom delays.
func NewWithTiming(roles []string, timing Timing) (Animator, error) {
	if len(roles) == 0 {
		return Animator{}, ErrNoRoles
	}

	rs := make([][]rune, len(roles))
	for i, r := range roles {
		rs[i] = []rune(r)
	}

	return Animator{
		roles:  rs,
		timing: timing,
		phase:  PhaseTyping,
	}, nil
}

// Frame returns the currently displayed text: the first charIndex characters
// of the current role.
func (a Animator) Frame() string {
	return string(a.roles[a.roleIndex][:a.charIndex])
}

// Role returns the full text of the current role.
func (a Animator) Role() string {
	return string(a.roles[a.roleIndex])
}

// RoleIndex returns the index of the current role.
func (a Animator) RoleIndex() int { return a.roleIndex }

// CharIndex returns the cursor position within the current role.
func (a Animator) CharIndex() int { return a.charIndex }

// Phase returns the active phase.
func (a Animator) Phase() Phase { return a.phase }

// Advance performs one tick and returns the next state together with the
// delay until the following tick should fire.
//
// Transition table:
//
//	typing,  cursor < len(role): cursor+1, wait Type
//	typing,  cursor = len(role): switch to erasing, wait Hold
//	erasing, cursor > 0:         cursor-1, wait Erase
//	erasing, cursor = 0:         next role, switch to typing, wait Rest
func (a Animator) Advance() (Animator, time.Duration) {
	role := a.roles[a.roleIndex]

	switch a.phase {
	case PhaseTyping:
		if a.charIndex < len(role) {
			a.charIndex++
			return a, a.timing.Type
		}
		a.phase = PhaseErasing
		return a, a.timing.Hold

	default: // PhaseErasing
		if a.charIndex > 0 {
			a.charIndex--
			return a, a.timing.Erase
		}
		a.roleIndex = (a.roleIndex + 1) % len(a.roles)
		a.phase = PhaseTyping
		return a, a.timing.Rest
	}
}

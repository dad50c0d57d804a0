package measurement

import (
	"errors"
	"log/slog"

	"github.com/ErikKalkoken/go-set"

	"github.com/philipparndt/trix3d/pkg/scene"
)

// Session accumulates calculator inputs and recomputes the result after
// every new input.
type Session struct {
	mode   Mode
	inputs []scene.ID
	seen   set.Set[scene.ID]
	result *Result
}

// NewSession creates a session without a mode.
func NewSession() *Session {
	return &Session{}
}

// Begin selects a mode and discards inputs and result.
func (s *Session) Begin(mode Mode) {
	s.mode = mode
	s.Clear()
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Clear discards inputs and result but keeps the mode.
func (s *Session) Clear() {
	s.inputs = nil
	s.seen.Clear()
	s.result = nil
}

// Reset returns the session to no mode.
func (s *Session) Reset() {
	s.Begin(ModeNone)
}

// Inputs returns the picked ids in order.
func (s *Session) Inputs() []scene.ID {
	return append([]scene.ID(nil), s.inputs...)
}

// IsInput reports whether id was picked.
func (s *Session) IsInput(id scene.ID) bool {
	return s.seen.Contains(id)
}

// Accepts reports whether the active mode takes entities of kind.
func (s *Session) Accepts(kind scene.Kind) bool {
	return s.mode.Accepts(kind)
}

// AddInput appends id and recalculates against snap. Without a mode, or for
// a repeated id, it does nothing. Inputs that do not satisfy the mode leave
// the session without a result and are not reported. Only an internal fault
// is returned, as ErrCalculationFailed, after clearing the result.
func (s *Session) AddInput(snap scene.Snapshot, id scene.ID) error {
	if s.mode == ModeNone || s.seen.Contains(id) {
		return nil
	}
	s.inputs = append(s.inputs, id)
	s.seen.Add(id)

	result, err := safeCalculate(s.mode, snap, s.inputs)
	switch {
	case err == nil:
		s.result = &result
		return nil
	case errors.Is(err, ErrCalculationFailed):
		slog.Error("measurement: calculation failed", "mode", s.mode, "error", err)
		s.result = nil
		return err
	default:
		s.result = nil
		return nil
	}
}

// Result returns the latest result.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// ResultString returns the latest result formatted for display, or "".
func (s *Session) ResultString() string {
	if s.result == nil {
		return ""
	}
	return s.result.String()
}

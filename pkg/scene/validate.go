package scene

import (
	"errors"
	"fmt"
	"math"
)

// Severity indicates whether a validation finding makes a scene unusable.
type Severity int

const (
	SeverityError   Severity = iota // breaks referential integrity
	SeverityWarning                 // geometrically suspicious but loadable
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes one finding.
type ValidationError struct {
	EntityID ID
	Message  string
	Severity Severity
	Err      error
}

func (e ValidationError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.EntityID, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a snapshot and returns all findings. The scene is usable
// when no finding has SeverityError.
func Validate(s Snapshot) []ValidationError {
	var findings []ValidationError
	findings = append(findings, validateIDs(s)...)
	findings = append(findings, validateReferences(s)...)
	findings = append(findings, validateValues(s)...)
	return findings
}

// Errors returns the blocking findings joined into one error, or nil.
func Errors(findings []ValidationError) error {
	var errs []error
	for _, f := range findings {
		if f.Severity == SeverityError {
			errs = append(errs, f)
		}
	}
	return errors.Join(errs...)
}

func validateIDs(s Snapshot) []ValidationError {
	var findings []ValidationError
	seen := make(map[ID]bool, s.Len())
	for e := range s.All() {
		if e.ID == "" {
			findings = append(findings, ValidationError{
				Message:  fmt.Sprintf("%s %q has an empty id", e.Kind(), e.Name),
				Severity: SeverityError,
				Err:      ErrInvalidValue,
			})
			continue
		}
		if seen[e.ID] {
			findings = append(findings, ValidationError{
				EntityID: e.ID,
				Message:  "id is used more than once",
				Severity: SeverityError,
				Err:      ErrDuplicateID,
			})
		}
		seen[e.ID] = true
		if e.Shape == nil {
			findings = append(findings, ValidationError{
				EntityID: e.ID,
				Message:  "entity has no shape",
				Severity: SeverityError,
				Err:      ErrInvalidValue,
			})
		}
	}
	return findings
}

func validateReferences(s Snapshot) []ValidationError {
	var findings []ValidationError
	for e := range s.All() {
		if e.Shape == nil {
			continue
		}
		for _, ref := range e.References() {
			if _, err := s.PointPosition(ref); err != nil {
				findings = append(findings, ValidationError{
					EntityID: e.ID,
					Message:  fmt.Sprintf("references %s which is not a point in the scene", ref),
					Severity: SeverityError,
					Err:      ErrDanglingReference,
				})
			}
		}
	}
	return findings
}

func validateValues(s Snapshot) []ValidationError {
	var findings []ValidationError
	add := func(e Entity, sev Severity, format string, args ...any) {
		findings = append(findings, ValidationError{
			EntityID: e.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
			Err:      ErrInvalidValue,
		})
	}

	for e := range s.All() {
		if e.Color != "" {
			if _, err := NormalizeColor(e.Color); err != nil {
				add(e, SeverityWarning, "color %q is not #rrggbb", e.Color)
			}
		}
		if pos, ok := e.Position(); ok && !pos.IsFinite() {
			add(e, SeverityError, "position is not finite")
		}

		switch sh := e.Shape.(type) {
		case Sphere:
			checkPositive(e, "radius", sh.Radius, add)
		case Cylinder:
			checkPositive(e, "radius", sh.Radius, add)
			checkPositive(e, "height", sh.Height, add)
		case Box:
			if !sh.Size.IsFinite() {
				add(e, SeverityError, "size is not finite")
			} else if sh.Size.X <= 0 || sh.Size.Y <= 0 || sh.Size.Z <= 0 {
				add(e, SeverityWarning, "size %v has a non-positive dimension", sh.Size.Array())
			}
		case Plane:
			if tri, err := s.PlaneTriangle(e.ID); err == nil && tri.IsDegenerate(1e-12) {
				add(e, SeverityWarning, "points are collinear")
			}
		}
	}
	return findings
}

func checkPositive(e Entity, field string, v float64, add func(Entity, Severity, string, ...any)) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		add(e, SeverityError, "%s is not finite", field)
	case v <= 0:
		add(e, SeverityWarning, "%s %g is not positive", field, v)
	}
}

// Package construction buffers the point picks needed to build lines and planes.
package construction

import (
	"fmt"

	"github.com/ErikKalkoken/go-set"

	"github.com/philipparndt/trix3d/pkg/scene"
)

// Tool is a construction tool that consumes picked points.
type Tool int

const (
	ToolNone Tool = iota
	ToolLine
	ToolPlane
)

func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "none"
	case ToolLine:
		return "line"
	case ToolPlane:
		return "plane"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Required returns the number of distinct points the tool consumes.
func (t Tool) Required() int {
	switch t {
	case ToolLine:
		return 2
	case ToolPlane:
		return 3
	default:
		return 0
	}
}

// Creator adds entities to the scene. *history.Manager satisfies it.
type Creator interface {
	Add(shape scene.Shape) (scene.ID, error)
}

// Session collects point ids in click order until the active tool has enough
// of them, then creates the entity through the Creator.
type Session struct {
	creator Creator
	tool    Tool
	pending []scene.ID
	seen    set.Set[scene.ID]
}

// NewSession creates an idle session.
func NewSession(creator Creator) *Session {
	return &Session{creator: creator}
}

// Begin activates a tool and discards any buffered points.
func (s *Session) Begin(tool Tool) {
	s.tool = tool
	s.Clear()
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// Clear discards buffered points.
func (s *Session) Clear() {
	s.pending = nil
	s.seen.Clear()
}

// Pending returns the buffered point ids in click order.
func (s *Session) Pending() []scene.ID {
	return append([]scene.ID(nil), s.pending...)
}

// IsPending reports whether the point is buffered.
func (s *Session) IsPending(id scene.ID) bool {
	return s.seen.Contains(id)
}

// AddPoint buffers a picked point. Repeated picks are ignored. When the tool
// has all its points the entity is created, the buffer is cleared and the new
// id is returned with done set. A failed creation also clears the buffer.
func (s *Session) AddPoint(id scene.ID) (created scene.ID, done bool, err error) {
	if s.tool == ToolNone {
		return "", false, fmt.Errorf("add point %s: no construction tool active", id)
	}
	if s.seen.Contains(id) {
		return "", false, nil
	}
	s.pending = append(s.pending, id)
	s.seen.Add(id)
	if len(s.pending) < s.tool.Required() {
		return "", false, nil
	}

	var shape scene.Shape
	switch s.tool {
	case ToolLine:
		shape = scene.Line{StartPointID: s.pending[0], EndPointID: s.pending[1]}
	case ToolPlane:
		shape = scene.Plane{PointIDs: [3]scene.ID{s.pending[0], s.pending[1], s.pending[2]}}
	}
	s.Clear()

	created, err = s.creator.Add(shape)
	if err != nil {
		return "", false, fmt.Errorf("construct %s: %w", s.tool, err)
	}
	return created, true, nil
}

// Package project reads and writes .trix3d project files: a JSON array of
// entity records.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

const (
	// Extension is the file extension of project files.
	Extension = ".trix3d"
	// MIMEType is the media type of project files.
	MIMEType = "application/json"
	// DefaultFileName is used when saving without an explicit name.
	DefaultFileName = "project" + Extension
)

// ErrMalformedProject is returned for input that is not a valid entity array.
var ErrMalformedProject = scene.ErrMalformedProject

// Record is the on-disk form of one entity.
type Record struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Color        string      `json:"color"`
	Position     *[3]float64 `json:"position,omitempty"`
	StartPointID string      `json:"startPointId,omitempty"`
	EndPointID   string      `json:"endPointId,omitempty"`
	PointIDs     *[3]string  `json:"pointIds,omitempty"`
	Radius       *float64    `json:"radius,omitempty"`
	Height       *float64    `json:"height,omitempty"`
	Size         *[3]float64 `json:"size,omitempty"`
}

// FromEntity converts an entity to its record.
func FromEntity(e scene.Entity) Record {
	r := Record{ID: string(e.ID), Name: e.Name, Type: e.Kind().String(), Color: e.Color}
	vec := func(v geometry.Vector3) *[3]float64 { a := v.Array(); return &a }
	num := func(f float64) *float64 { return &f }

	switch s := e.Shape.(type) {
	case scene.Point:
		r.Position = vec(s.Position)
	case scene.Line:
		r.StartPointID = string(s.StartPointID)
		r.EndPointID = string(s.EndPointID)
	case scene.Plane:
		r.PointIDs = &[3]string{string(s.PointIDs[0]), string(s.PointIDs[1]), string(s.PointIDs[2])}
	case scene.Sphere:
		r.Position = vec(s.Position)
		r.Radius = num(s.Radius)
	case scene.Cylinder:
		r.Position = vec(s.Position)
		r.Radius = num(s.Radius)
		r.Height = num(s.Height)
	case scene.Box:
		r.Position = vec(s.Position)
		r.Size = vec(s.Size)
	}
	return r
}

// Entity converts a record back to an entity. Fields the type needs must be present.
func (r Record) Entity() (scene.Entity, error) {
	kind, err := scene.ParseKind(r.Type)
	if err != nil {
		return scene.Entity{}, err
	}
	missing := func(field string) error {
		return fmt.Errorf("%s %q is missing %s", r.Type, r.ID, field)
	}

	e := scene.Entity{ID: scene.ID(r.ID), Name: r.Name, Color: r.Color}
	switch kind {
	case scene.KindPoint:
		if r.Position == nil {
			return e, missing("position")
		}
		e.Shape = scene.Point{Position: geometry.Vector3FromArray(*r.Position)}
	case scene.KindLine:
		if r.StartPointID == "" || r.EndPointID == "" {
			return e, missing("startPointId/endPointId")
		}
		e.Shape = scene.Line{StartPointID: scene.ID(r.StartPointID), EndPointID: scene.ID(r.EndPointID)}
	case scene.KindPlane:
		if r.PointIDs == nil {
			return e, missing("pointIds")
		}
		ids := *r.PointIDs
		e.Shape = scene.Plane{PointIDs: [3]scene.ID{scene.ID(ids[0]), scene.ID(ids[1]), scene.ID(ids[2])}}
	case scene.KindSphere:
		if r.Position == nil || r.Radius == nil {
			return e, missing("position/radius")
		}
		e.Shape = scene.Sphere{Position: geometry.Vector3FromArray(*r.Position), Radius: *r.Radius}
	case scene.KindCylinder:
		if r.Position == nil || r.Radius == nil || r.Height == nil {
			return e, missing("position/radius/height")
		}
		e.Shape = scene.Cylinder{Position: geometry.Vector3FromArray(*r.Position), Radius: *r.Radius, Height: *r.Height}
	case scene.KindBox:
		if r.Position == nil || r.Size == nil {
			return e, missing("position/size")
		}
		e.Shape = scene.Box{Position: geometry.Vector3FromArray(*r.Position), Size: geometry.Vector3FromArray(*r.Size)}
	}
	return e, nil
}

// Encode writes the snapshot as an indented JSON array.
func Encode(w io.Writer, snap scene.Snapshot) error {
	records := make([]Record, 0, snap.Len())
	for e := range snap.All() {
		records = append(records, FromEntity(e))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// Decode reads entities from a JSON array. Anything else, including records
// of unknown type or with missing fields, fails with ErrMalformedProject.
// Referential integrity is checked by history.Manager.LoadProject.
func Decode(r io.Reader) ([]scene.Entity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedProject)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedProject, err)
	}

	entities := make([]scene.Entity, 0, len(records))
	for i, rec := range records {
		e, err := rec.Entity()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformedProject, i, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

// Load reads a project file.
func Load(path string) ([]scene.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	defer f.Close()

	entities, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entities, nil
}

// Save writes a project file.
func Save(path string, snap scene.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

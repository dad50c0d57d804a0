package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/trix3d/pkg/geometry"
)

// Parse reads an STL file and returns a Model
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes an STL stream, detecting ASCII or binary format from the
// leading "solid" keyword
func Read(r io.Reader) (*Model, error) {
	reader := bufio.NewReader(r)
	header, err := reader.Peek(5)
	if err != nil && len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// Binary files may also start with "solid", so require a facet to follow.
	if string(header) == "solid" {
		if probe, _ := reader.Peek(512); bytes.Contains(probe, []byte("facet")) || bytes.Contains(probe, []byte("endsolid")) {
			return parseASCII(reader)
		}
	}

	return parseBinary(reader)
}

// parseASCII reads "solid ... endsolid" text. Facets without exactly three
// vertices are skipped; malformed numbers fail with the line they are on.
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var (
		normal   geometry.Vector3
		vertices []geometry.Vector3
		lineNo   int
	)
	vector := func(fields []string) (geometry.Vector3, error) {
		var v [3]float64
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return geometry.Vector3{}, fmt.Errorf("line %d: invalid number %q", lineNo, fields[i])
			}
			v[i] = f
		}
		return geometry.Vector3FromArray(v), nil
	}

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch keyword := fields[0]; {
		case keyword == "solid":
			model.Name = strings.Join(fields[1:], " ")
		case keyword == "facet" && len(fields) >= 5 && fields[1] == "normal":
			normal, err = vector(fields[2:5])
			vertices = vertices[:0]
		case keyword == "vertex" && len(fields) >= 4:
			var v geometry.Vector3
			if v, err = vector(fields[1:4]); err == nil {
				vertices = append(vertices, v)
			}
		case keyword == "endfacet":
			if len(vertices) == 3 {
				model.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
		if err != nil {
			return nil, fmt.Errorf("invalid ASCII STL: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerStr := string(bytes.TrimRight(header, "\x00"))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		var f facet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.AddTriangle(f.triangle())
	}

	return model, nil
}

// facet is the 50-byte binary STL record
type facet struct {
	Normal, V1, V2, V3 [3]float32
	Attribute          uint16
}

func newFacet(t geometry.Triangle) facet {
	return facet{
		Normal: float32s(t.Normal.Array()),
		V1:     float32s(t.V1.Array()),
		V2:     float32s(t.V2.Array()),
		V3:     float32s(t.V3.Array()),
	}
}

func (f facet) triangle() geometry.Triangle {
	return geometry.NewTriangle(float64s(f.Normal), float64s(f.V1), float64s(f.V2), float64s(f.V3))
}

func float64s(a [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(a[0]), float64(a[1]), float64(a[2]))
}

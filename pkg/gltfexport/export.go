// Package gltfexport exports tessellated scenes as glTF 2.0 documents, one mesh and
// material per entity.
package gltfexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/tessellate"
)

// Document builds a glTF document from meshed parts. Each part becomes a
// node with its own mesh named after the entity.
func Document(parts []tessellate.Part) *gltf.Document {
	doc := gltf.NewDocument()

	for _, part := range parts {
		positions := make([][3]float32, 0, len(part.Triangles)*3)
		normals := make([][3]float32, 0, len(part.Triangles)*3)
		indices := make([]uint32, 0, len(part.Triangles)*3)
		for _, t := range part.Triangles {
			n := t.CalculateNormal()
			for _, v := range t.Vertices() {
				indices = append(indices, uint32(len(positions)))
				positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
				normals = append(normals, [3]float32{float32(n.X), float32(n.Y), float32(n.Z)})
			}
		}

		doc.Materials = append(doc.Materials, material(part))
		primitive := &gltf.Primitive{
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
			Indices:  gltf.Index(modeler.WriteIndices(doc, indices)),
			Material: gltf.Index(len(doc.Materials) - 1),
			Mode:     gltf.PrimitiveTriangles,
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       part.Entity.Name,
			Primitives: []*gltf.Primitive{primitive},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: string(part.Entity.ID),
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

func material(part tessellate.Part) *gltf.Material {
	c, err := colorful.Hex(part.Entity.Color)
	if err != nil {
		c = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	}
	r, g, b := c.LinearRgb()
	return &gltf.Material{
		Name:        part.Entity.Name,
		DoubleSided: part.Entity.Kind() == scene.KindPlane,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{r, g, b, 1},
		},
	}
}

// Encode writes doc as .gltf JSON, or as .glb when binary is set.
func Encode(w io.Writer, doc *gltf.Document, binary bool) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode gltf: %w", err)
	}
	return nil
}

// Save writes the parts to filename. A .glb extension selects the binary container.
func Save(filename string, parts []tessellate.Part) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	binary := strings.EqualFold(filepath.Ext(filename), ".glb")
	if err := Encode(file, Document(parts), binary); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

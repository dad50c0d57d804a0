package gltfexport_test

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/gltfexport"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/tessellate"
)

func parts() []tessellate.Part {
	return []tessellate.Part{
		{
			Entity: scene.Entity{ID: "plane-1", Name: "Plane 1", Color: "#ff0000", Shape: scene.Plane{}},
			Triangles: []geometry.Triangle{geometry.TriangleFromPoints(
				geometry.NewVector3(0, 0, 0),
				geometry.NewVector3(1, 0, 0),
				geometry.NewVector3(0, 1, 0),
			)},
		},
		{
			Entity: scene.Entity{ID: "box-2", Name: "Box 1", Color: "not a color", Shape: scene.Box{}},
			Triangles: []geometry.Triangle{
				geometry.TriangleFromPoints(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 0, 1)),
				geometry.TriangleFromPoints(geometry.NewVector3(1, 0, 0), geometry.NewVector3(1, 0, 1), geometry.NewVector3(0, 0, 1)),
			},
		},
	}
}

func TestDocument(t *testing.T) {
	doc := gltfexport.Document(parts())

	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Materials, 2)
	assert.Equal(t, "Plane 1", doc.Meshes[0].Name)
	assert.Equal(t, "box-2", doc.Nodes[1].Name)
	assert.Equal(t, []int{0, 1}, doc.Scenes[0].Nodes)
	assert.True(t, doc.Materials[0].DoubleSided)

	base := doc.Materials[0].PBRMetallicRoughness.BaseColorFactor
	require.NotNil(t, base)
	assert.InDelta(t, 1.0, base[0], 1e-9)
	assert.InDelta(t, 0.0, base[1], 1e-9)

	prim := doc.Meshes[1].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	assert.Equal(t, 6, pos.Count)
	assert.Equal(t, 6, doc.Accessors[*prim.Indices].Count)
}

func TestEncodeBinaryDecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gltfexport.Encode(&buf, gltfexport.Document(parts()), true))
	assert.Equal(t, "glTF", buf.String()[:4])

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(&buf).Decode(&doc))
	assert.Len(t, doc.Meshes, 2)
}

// Package render defines what the keycap core needs from a 3D rendering
// layer and assembles keycap meshes through it.
package render

import (
	"fmt"
	"image/color"

	"keycap-atlas/internal/keycap"
	"keycap-atlas/internal/mesh"
)

// Texture is a GPU-resident copy of the atlas. MarkDirty schedules a
// re-upload of the atlas bytes before the next frame.
type Texture interface {
	MarkDirty()
}

// Material is one face's surface. Atlas materials sample the shared texture.
type Material struct {
	Color color.Color
	Atlas bool
}

// Mesh is a placed primitive owned by the rendering layer.
type Mesh interface {
	SetPosition(x, y, z float64)
}

// MeshFactory creates meshes from box geometry and one material per face.
type MeshFactory interface {
	NewMesh(box *mesh.Box, materials []Material) (Mesh, error)
}

// Materials returns the per-face materials of a keycap: plastic on every
// side, atlas on top.
func Materials(side color.Color) []Material {
	mats := make([]Material, mesh.NumFaces)
	for f := range mats {
		mats[f] = Material{Color: side}
	}
	mats[mesh.FaceTop] = Material{Atlas: true}
	return mats
}

// BuildScene creates one mesh per keycap, placed at its board position.
// Keycap geometry and UVs are fixed here; later atlas repaints only need a
// texture upload.
func BuildScene(board *keycap.Board, factory MeshFactory, side color.Color) ([]Mesh, error) {
	meshes := make([]Mesh, 0, board.Len())
	for _, k := range board.Keycaps() {
		m, err := factory.NewMesh(mesh.ForKeycap(board, k), Materials(side))
		if err != nil {
			return nil, fmt.Errorf("failed to create mesh for key %d: %w", k.Index, err)
		}
		c := board.Center(k)
		// meshes are centered on their local origin, so lift by half a key
		m.SetPosition(c.X, c.Y-k.SizeY/2, c.Z)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

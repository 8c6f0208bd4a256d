// Package mesh builds indexed triangle data for keycap boxes, with the
// top face's texture coordinates driven by the board's atlas mapping.
package mesh

import (
	"keycap-atlas/internal/keycap"
)

// Face names one side of a box. The order matches the material slots
// expected by the rendering layer.
type Face int

const (
	FaceRight  Face = iota // +X
	FaceLeft               // -X
	FaceTop                // +Y, carries the atlas
	FaceBottom             // -Y
	FaceFront              // +Z, toward the typist
	FaceBack               // -Z
	NumFaces
)

func (f Face) String() string {
	switch f {
	case FaceRight:
		return "Right"
	case FaceLeft:
		return "Left"
	case FaceTop:
		return "Top"
	case FaceBottom:
		return "Bottom"
	case FaceFront:
		return "Front"
	case FaceBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Vertex is one corner of a face.
type Vertex struct {
	Position [3]float64
	Normal   [3]float64
	UV       [2]float64
}

// VerticesPerFace is the corner count of each quad face.
const VerticesPerFace = 4

// faceIndices triangulates a quad whose corners run counter-clockwise when
// seen from outside the box.
var faceIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// Box is an axis-aligned cuboid centered on its local origin.
type Box struct {
	SizeX, SizeY, SizeZ float64
	faces               [NumFaces][VerticesPerFace]Vertex
}

type faceFrame struct {
	normal [3]float64
	u, v   [3]float64 // unit axes along which texture u and v grow
}

var frames = [NumFaces]faceFrame{
	FaceRight:  {normal: [3]float64{1, 0, 0}, u: [3]float64{0, 0, -1}, v: [3]float64{0, 1, 0}},
	FaceLeft:   {normal: [3]float64{-1, 0, 0}, u: [3]float64{0, 0, 1}, v: [3]float64{0, 1, 0}},
	FaceTop:    {normal: [3]float64{0, 1, 0}, u: [3]float64{1, 0, 0}, v: [3]float64{0, 0, -1}},
	FaceBottom: {normal: [3]float64{0, -1, 0}, u: [3]float64{1, 0, 0}, v: [3]float64{0, 0, 1}},
	FaceFront:  {normal: [3]float64{0, 0, 1}, u: [3]float64{1, 0, 0}, v: [3]float64{0, 1, 0}},
	FaceBack:   {normal: [3]float64{0, 0, -1}, u: [3]float64{-1, 0, 0}, v: [3]float64{0, 1, 0}},
}

// corners lists (u, v) steps in counter-clockwise order.
var corners = [VerticesPerFace][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// NewBox creates a box with per-face [0,1] texture coordinates.
func NewBox(sizeX, sizeY, sizeZ float64) *Box {
	b := &Box{SizeX: sizeX, SizeY: sizeY, SizeZ: sizeZ}
	half := [3]float64{sizeX / 2, sizeY / 2, sizeZ / 2}
	for f := Face(0); f < NumFaces; f++ {
		fr := frames[f]
		for i, c := range corners {
			var pos [3]float64
			for axis := 0; axis < 3; axis++ {
				pos[axis] = fr.normal[axis]*half[axis] +
					(c[0]*2-1)*fr.u[axis]*half[axis] +
					(c[1]*2-1)*fr.v[axis]*half[axis]
			}
			b.faces[f][i] = Vertex{Position: pos, Normal: fr.normal, UV: c}
		}
	}
	return b
}

// Face returns the corners of one face.
func (b *Box) Face(f Face) [VerticesPerFace]Vertex {
	return b.faces[f]
}

// SetFaceUV recomputes a face's texture coordinates from each corner's
// local position.
func (b *Box) SetFaceUV(f Face, fn func(x, y, z float64) (u, v float64)) {
	for i := range b.faces[f] {
		p := b.faces[f][i].Position
		u, v := fn(p[0], p[1], p[2])
		b.faces[f][i].UV = [2]float64{u, v}
	}
}

// ForKeycap builds the box for one keycap and maps its top face into the
// board's shared atlas, so adjacent keys show adjacent parts of the image.
func ForKeycap(board *keycap.Board, k keycap.Keycap) *Box {
	b := NewBox(k.SizeX, k.SizeY, k.SizeZ)
	b.SetFaceUV(FaceTop, func(x, _, z float64) (float64, float64) {
		return board.UVAt(k.OriginX+k.SizeX/2+x, k.OriginZ+k.SizeZ/2+z)
	})
	return b
}

// NumVertices returns the vertex count.
func (b *Box) NumVertices() int {
	return int(NumFaces) * VerticesPerFace
}

// Positions returns xyz triples for every vertex, face by face.
func (b *Box) Positions() []float32 {
	out := make([]float32, 0, b.NumVertices()*3)
	for _, face := range b.faces {
		for _, v := range face {
			out = append(out, float32(v.Position[0]), float32(v.Position[1]), float32(v.Position[2]))
		}
	}
	return out
}

// Normals returns xyz normal triples matching Positions.
func (b *Box) Normals() []float32 {
	out := make([]float32, 0, b.NumVertices()*3)
	for _, face := range b.faces {
		for _, v := range face {
			out = append(out, float32(v.Normal[0]), float32(v.Normal[1]), float32(v.Normal[2]))
		}
	}
	return out
}

// UVs returns uv pairs matching Positions.
func (b *Box) UVs() []float32 {
	out := make([]float32, 0, b.NumVertices()*2)
	for _, face := range b.faces {
		for _, v := range face {
			out = append(out, float32(v.UV[0]), float32(v.UV[1]))
		}
	}
	return out
}

// Indices returns triangle indices into the vertex arrays.
func (b *Box) Indices() []uint32 {
	out := make([]uint32, 0, int(NumFaces)*len(faceIndices))
	for f := 0; f < int(NumFaces); f++ {
		base := uint32(f * VerticesPerFace)
		for _, idx := range faceIndices {
			out = append(out, base+idx)
		}
	}
	return out
}

// Groups returns, per face, the first index and index count, for binding
// one material per face.
func (b *Box) Groups() [NumFaces][2]int {
	var g [NumFaces][2]int
	for f := range g {
		g[f] = [2]int{f * len(faceIndices), len(faceIndices)}
	}
	return g
}

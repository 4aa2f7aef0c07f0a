package api

import (
	"github.com/arx-os/mg2container/internal/mg2"
)

// meshPayload is the JSON wire shape for a mesh submitted for
// compression. Field names mirror mg2.Mesh; this layer exists so the
// codec package never has to carry JSON struct tags.
type meshPayload struct {
	Vertices        []vec3Payload `json:"vertices" binding:"required,min=1"`
	Indices         []uint32      `json:"indices" binding:"required,min=3"`
	TexCoords       []vec2Payload `json:"tex_coords,omitempty"`
	Normals         []vec3Payload `json:"normals,omitempty"`
	VertexPrecision float32       `json:"vertex_precision" binding:"required,gt=0"`
}

type vec3Payload struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type vec2Payload struct {
	U float32 `json:"u"`
	V float32 `json:"v"`
}

func (p meshPayload) toMesh() (*mg2.Mesh, error) {
	mesh := &mg2.Mesh{
		Vertices:        make([]mg2.Vec3, len(p.Vertices)),
		Indices:         p.Indices,
		VertexPrecision: p.VertexPrecision,
	}
	for i, v := range p.Vertices {
		mesh.Vertices[i] = mg2.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	}
	if len(p.TexCoords) > 0 {
		mesh.TexCoords = make([]mg2.Vec2, len(p.TexCoords))
		for i, t := range p.TexCoords {
			mesh.TexCoords[i] = mg2.Vec2{U: t.U, V: t.V}
		}
	}
	if len(p.Normals) > 0 {
		mesh.Normals = make([]mg2.Vec3, len(p.Normals))
		for i, n := range p.Normals {
			mesh.Normals[i] = mg2.Vec3{X: n.X, Y: n.Y, Z: n.Z}
		}
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func fromMesh(mesh *mg2.Mesh) meshPayload {
	out := meshPayload{
		Vertices:        make([]vec3Payload, len(mesh.Vertices)),
		Indices:         mesh.Indices,
		VertexPrecision: mesh.VertexPrecision,
	}
	for i, v := range mesh.Vertices {
		out.Vertices[i] = vec3Payload{X: v.X, Y: v.Y, Z: v.Z}
	}
	if mesh.HasTexCoords() {
		out.TexCoords = make([]vec2Payload, len(mesh.TexCoords))
		for i, t := range mesh.TexCoords {
			out.TexCoords[i] = vec2Payload{U: t.U, V: t.V}
		}
	}
	if mesh.HasNormals() {
		out.Normals = make([]vec3Payload, len(mesh.Normals))
		for i, n := range mesh.Normals {
			out.Normals[i] = vec3Payload{X: n.X, Y: n.Y, Z: n.Z}
		}
	}
	return out
}

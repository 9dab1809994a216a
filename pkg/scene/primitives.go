package scene

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds Blinn-Phong reflectances plus an optional perfect mirror term.
// Materials are shared by pointer between all primitives that use them.
type Material struct {
	Ambient       core.Vec3
	Diffuse       core.Vec3
	Specular      core.Vec3
	Mirror        core.Vec3
	PhongExponent float64
	IsMirror      bool
}

// PointLight is an isotropic point light with radiant intensity per channel
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// Sphere is a sphere with resolved center
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: material}
}

// Triangle is a single triangle with edges and face normal computed at construction.
// Mesh faces use the same representation.
type Triangle struct {
	V0, V1, V2   core.Vec3
	Edge1, Edge2 core.Vec3 // V1-V0 and V2-V0
	Normal       core.Vec3 // Unit normal, (Edge1 x Edge2) normalized
	Material     *Material
}

// NewTriangle creates a triangle and caches its edges and normal.
// The normal follows the counter-clockwise winding of v0, v1, v2.
func NewTriangle(v0, v1, v2 core.Vec3, material *Material) Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Edge1:    edge1,
		Edge2:    edge2,
		Normal:   edge1.Cross(edge2).Normalize(),
		Material: material,
	}
}

// Mesh is a list of faces sharing one material
type Mesh struct {
	Material *Material
	Faces    []Triangle
}

// NewMesh builds a mesh from vertex triples; every face gets the mesh material
func NewMesh(material *Material, faces [][3]core.Vec3) Mesh {
	mesh := Mesh{Material: material, Faces: make([]Triangle, 0, len(faces))}
	for _, f := range faces {
		mesh.Faces = append(mesh.Faces, NewTriangle(f[0], f[1], f[2], material))
	}
	return mesh
}

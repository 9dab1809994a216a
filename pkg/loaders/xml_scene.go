package loaders

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// xmlScene mirrors the scene description document. Numeric fields are kept
// as text and parsed after decoding so errors can name the element.
type xmlScene struct {
	XMLName           xml.Name        `xml:"Scene"`
	BackgroundColor   string          `xml:"BackgroundColor"`
	ShadowRayEpsilon  string          `xml:"ShadowRayEpsilon"`
	MaxRecursionDepth string          `xml:"MaxRecursionDepth"`
	Cameras           []xmlCamera     `xml:"Cameras>Camera"`
	AmbientLight      string          `xml:"Lights>AmbientLight"`
	PointLights       []xmlPointLight `xml:"Lights>PointLight"`
	Materials         []xmlMaterial   `xml:"Materials>Material"`
	VertexData        string          `xml:"VertexData"`
	Meshes            []xmlMesh       `xml:"Objects>Mesh"`
	Triangles         []xmlTriangle   `xml:"Objects>Triangle"`
	Spheres           []xmlSphere     `xml:"Objects>Sphere"`
}

type xmlCamera struct {
	ID              string `xml:"id,attr"`
	Type            string `xml:"type,attr"` // "" or "lookAt"
	Position        string `xml:"Position"`
	Gaze            string `xml:"Gaze"`
	GazePoint       string `xml:"GazePoint"`
	Up              string `xml:"Up"`
	NearPlane       string `xml:"NearPlane"`
	FovY            string `xml:"FovY"`
	NearDistance    string `xml:"NearDistance"`
	ImageResolution string `xml:"ImageResolution"`
	ImageName       string `xml:"ImageName"`
}

type xmlPointLight struct {
	ID        string `xml:"id,attr"`
	Position  string `xml:"Position"`
	Intensity string `xml:"Intensity"`
}

type xmlMaterial struct {
	ID                  string `xml:"id,attr"`
	Type                string `xml:"type,attr"`
	AmbientReflectance  string `xml:"AmbientReflectance"`
	DiffuseReflectance  string `xml:"DiffuseReflectance"`
	SpecularReflectance string `xml:"SpecularReflectance"`
	MirrorReflectance   string `xml:"MirrorReflectance"`
	PhongExponent       string `xml:"PhongExponent"`
}

type xmlMesh struct {
	ID       string `xml:"id,attr"`
	Material string `xml:"Material"`
	Faces    string `xml:"Faces"`
}

type xmlTriangle struct {
	ID       string `xml:"id,attr"`
	Material string `xml:"Material"`
	Indices  string `xml:"Indices"`
}

type xmlSphere struct {
	ID       string `xml:"id,attr"`
	Material string `xml:"Material"`
	Center   string `xml:"Center"`
	Radius   string `xml:"Radius"`
}

// LoadXMLScene loads and parses an XML scene file
func LoadXMLScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseXMLScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseXMLScene decodes a scene description, resolves all 1-based vertex and
// material indices, precomputes triangle data and validates the result
func ParseXMLScene(reader io.Reader) (*scene.Scene, error) {
	var doc xmlScene
	if err := xml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scene XML: %w", err)
	}

	b := &sceneBuilder{scene: scene.NewScene()}
	b.parseSettings(doc)
	b.parseCameras(doc.Cameras)
	b.parseLights(doc)
	b.parseMaterials(doc.Materials)
	b.parseVertices(doc.VertexData)
	b.parseObjects(doc)
	if b.err != nil {
		return nil, b.err
	}

	if err := b.scene.Validate(); err != nil {
		return nil, err
	}
	return b.scene, nil
}

// sceneBuilder accumulates the scene and keeps the first error; later steps are no-ops after it
type sceneBuilder struct {
	scene *scene.Scene
	err   error
}

func (b *sceneBuilder) fail(format string, args ...interface{}) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

func (b *sceneBuilder) floats(element, text string, count int) []float64 {
	if b.err != nil {
		return make([]float64, max(count, 0))
	}
	values, err := parseFloats(text)
	if err != nil {
		b.fail("%s: %w", element, err)
		return make([]float64, max(count, 0))
	}
	if count >= 0 && len(values) != count {
		b.fail("%s: expected %d numbers, got %d", element, count, len(values))
		return make([]float64, count)
	}
	return values
}

func (b *sceneBuilder) vec3(element, text string) core.Vec3 {
	v := b.floats(element, text, 3)
	return core.NewVec3(v[0], v[1], v[2])
}

func (b *sceneBuilder) float(element, text string) float64 {
	return b.floats(element, text, 1)[0]
}

func (b *sceneBuilder) integer(element, text string) int {
	if b.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		b.fail("%s: %w", element, err)
	}
	return n
}

func (b *sceneBuilder) resolution(element, text string) (int, int) {
	fields := strings.Fields(text)
	if b.err == nil && len(fields) != 2 {
		b.fail("%s: expected 2 numbers, got %d", element, len(fields))
	}
	if b.err != nil {
		return 0, 0
	}
	return b.integer(element, fields[0]), b.integer(element, fields[1])
}

func (b *sceneBuilder) parseSettings(doc xmlScene) {
	if strings.TrimSpace(doc.BackgroundColor) != "" {
		b.scene.BackgroundColor = b.vec3("BackgroundColor", doc.BackgroundColor)
	}
	if strings.TrimSpace(doc.ShadowRayEpsilon) != "" {
		b.scene.ShadowRayEpsilon = b.float("ShadowRayEpsilon", doc.ShadowRayEpsilon)
	}
	if strings.TrimSpace(doc.MaxRecursionDepth) != "" {
		b.scene.MaxRecursionDepth = b.integer("MaxRecursionDepth", doc.MaxRecursionDepth)
	}
}

func (b *sceneBuilder) parseCameras(cameras []xmlCamera) {
	for i, c := range cameras {
		element := fmt.Sprintf("Camera %d", i+1)

		camera := scene.Camera{
			Position:     b.vec3(element+" Position", c.Position),
			Up:           b.vec3(element+" Up", c.Up),
			NearDistance: b.float(element+" NearDistance", c.NearDistance),
			ImageName:    strings.TrimSpace(c.ImageName),
		}

		camera.Width, camera.Height = b.resolution(element+" ImageResolution", c.ImageResolution)

		if strings.EqualFold(c.Type, "lookAt") {
			gazePoint := b.vec3(element+" GazePoint", c.GazePoint)
			camera.Gaze = gazePoint.Subtract(camera.Position)
			camera.NearPlane = lookAtNearPlane(
				b.float(element+" FovY", c.FovY), camera.NearDistance, camera.Width, camera.Height)
		} else {
			camera.Gaze = b.vec3(element+" Gaze", c.Gaze)
			plane := b.floats(element+" NearPlane", c.NearPlane, 4)
			camera.NearPlane = scene.NearPlane{Left: plane[0], Right: plane[1], Bottom: plane[2], Top: plane[3]}
		}

		if camera.ImageName == "" {
			b.fail("%s: missing ImageName", element)
		}
		b.scene.Cameras = append(b.scene.Cameras, camera)
	}
}

// lookAtNearPlane derives a symmetric near plane from a vertical field of view in degrees
func lookAtNearPlane(fovY, nearDistance float64, width, height int) scene.NearPlane {
	top := nearDistance * math.Tan(fovY*math.Pi/360)
	right := top
	if height > 0 {
		right = top * float64(width) / float64(height)
	}
	return scene.NearPlane{Left: -right, Right: right, Bottom: -top, Top: top}
}

func (b *sceneBuilder) parseLights(doc xmlScene) {
	if strings.TrimSpace(doc.AmbientLight) != "" {
		b.scene.AmbientLight = b.vec3("AmbientLight", doc.AmbientLight)
	}
	for i, l := range doc.PointLights {
		element := fmt.Sprintf("PointLight %d", i+1)
		b.scene.PointLights = append(b.scene.PointLights, scene.PointLight{
			Position:  b.vec3(element+" Position", l.Position),
			Intensity: b.vec3(element+" Intensity", l.Intensity),
		})
	}
}

func (b *sceneBuilder) parseMaterials(materials []xmlMaterial) {
	for i, m := range materials {
		element := fmt.Sprintf("Material %d", i+1)
		mat := &scene.Material{
			Ambient:  b.vec3(element+" AmbientReflectance", m.AmbientReflectance),
			Diffuse:  b.vec3(element+" DiffuseReflectance", m.DiffuseReflectance),
			Specular: b.vec3(element+" SpecularReflectance", m.SpecularReflectance),
			IsMirror: strings.EqualFold(m.Type, "mirror"),
		}
		if strings.TrimSpace(m.MirrorReflectance) != "" {
			mat.Mirror = b.vec3(element+" MirrorReflectance", m.MirrorReflectance)
		}
		if strings.TrimSpace(m.PhongExponent) != "" {
			mat.PhongExponent = b.float(element+" PhongExponent", m.PhongExponent)
		}
		if mat.PhongExponent < 0 {
			b.fail("%w: %s has negative phong exponent", scene.ErrInvalidScene, element)
		}
		b.scene.Materials = append(b.scene.Materials, mat)
	}
}

func (b *sceneBuilder) parseVertices(text string) {
	values := b.floats("VertexData", text, -1)
	if len(values)%3 != 0 {
		b.fail("VertexData: %d numbers is not a multiple of 3", len(values))
		return
	}
	for i := 0; i < len(values); i += 3 {
		b.scene.Vertices = append(b.scene.Vertices, core.NewVec3(values[i], values[i+1], values[i+2]))
	}
}

// vertex resolves a 1-based vertex index
func (b *sceneBuilder) vertex(element string, id int) core.Vec3 {
	if id < 1 || id > len(b.scene.Vertices) {
		b.fail("%w: %s references vertex %d of %d", scene.ErrInvalidScene, element, id, len(b.scene.Vertices))
		return core.Vec3{}
	}
	return b.scene.Vertices[id-1]
}

// material resolves a 1-based material index
func (b *sceneBuilder) material(element, text string) *scene.Material {
	id := b.integer(element+" Material", text)
	if b.err != nil {
		return nil
	}
	if id < 1 || id > len(b.scene.Materials) {
		b.fail("%w: %s references material %d of %d", scene.ErrInvalidScene, element, id, len(b.scene.Materials))
		return nil
	}
	return b.scene.Materials[id-1]
}

// indices parses a list of 1-based vertex indices that must form whole triangles
func (b *sceneBuilder) indices(element, text string) [][3]core.Vec3 {
	if b.err != nil {
		return nil
	}
	fields := strings.Fields(text)
	if len(fields)%3 != 0 {
		b.fail("%s: %d indices is not a multiple of 3", element, len(fields))
		return nil
	}

	faces := make([][3]core.Vec3, 0, len(fields)/3)
	for i := 0; i < len(fields) && b.err == nil; i += 3 {
		var face [3]core.Vec3
		for k := 0; k < 3; k++ {
			face[k] = b.vertex(element, b.integer(element+" index", fields[i+k]))
		}
		faces = append(faces, face)
	}
	return faces
}

func (b *sceneBuilder) parseObjects(doc xmlScene) {
	for i, m := range doc.Meshes {
		element := fmt.Sprintf("Mesh %d", i+1)
		mat := b.material(element, m.Material)
		faces := b.indices(element+" Faces", m.Faces)
		if b.err != nil {
			return
		}
		if len(faces) == 0 {
			b.fail("%w: %s has no faces", scene.ErrInvalidScene, element)
			return
		}
		b.scene.Meshes = append(b.scene.Meshes, scene.NewMesh(mat, faces))
	}

	for i, t := range doc.Triangles {
		element := fmt.Sprintf("Triangle %d", i+1)
		mat := b.material(element, t.Material)
		faces := b.indices(element+" Indices", t.Indices)
		if b.err != nil {
			return
		}
		if len(faces) != 1 {
			b.fail("%s: expected 3 indices, got %d", element, 3*len(faces))
			return
		}
		f := faces[0]
		b.scene.Triangles = append(b.scene.Triangles, scene.NewTriangle(f[0], f[1], f[2], mat))
	}

	for i, sp := range doc.Spheres {
		element := fmt.Sprintf("Sphere %d", i+1)
		mat := b.material(element, sp.Material)
		center := b.vertex(element, b.integer(element+" Center", sp.Center))
		radius := b.float(element+" Radius", sp.Radius)
		if b.err != nil {
			return
		}
		b.scene.Spheres = append(b.scene.Spheres, scene.NewSphere(center, radius, mat))
	}
}

// parseFloats splits whitespace separated numbers
func parseFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		values[i] = v
	}
	return values, nil
}

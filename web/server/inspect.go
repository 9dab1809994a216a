package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]byte                `json:"color"` // Quantized pixel color
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult is the closest hit through a pixel and the color it shades to
type InspectResult struct {
	Hit   geometry.Intersection
	Color core.Vec3
}

// inspectPixel casts the camera ray through the center of pixel (row, col)
func inspectPixel(sceneObj *scene.Scene, camera scene.Camera, row, col int) InspectResult {
	pixelWidth, pixelHeight := renderer.PixelSize(camera)
	ray := renderer.GenerateRay(camera, row, col, pixelWidth, pixelHeight)

	whitted := integrator.NewWhittedIntegrator(sceneObj)
	return InspectResult{
		Hit:   geometry.ClosestHit(ray, sceneObj),
		Color: whitted.RayColor(ray, 0),
	}
}

// extractMaterialInfo describes a material for display
func extractMaterialInfo(mat *scene.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"ambient":       vecArray(mat.Ambient),
		"diffuse":       vecArray(mat.Diffuse),
		"specular":      vecArray(mat.Specular),
		"phongExponent": mat.PhongExponent,
	}
	if mat.IsMirror {
		properties["mirror"] = vecArray(mat.Mirror)
		return "mirror", properties
	}
	return "phong", properties
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	col, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	row, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, camera, err := s.loadCamera(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if col < 0 || col >= camera.Width || row < 0 || row >= camera.Height {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Pixel coordinates out of bounds for %dx%d image", camera.Width, camera.Height))
		return
	}

	result := inspectPixel(sceneObj, camera, row, col)
	response := InspectResponse{
		Hit:   result.Hit.Found,
		Color: renderer.QuantizeColor(result.Color),
	}
	if result.Hit.Found {
		materialType, materialProps := extractMaterialInfo(result.Hit.Material)
		response.MaterialType = materialType
		response.GeometryType = result.Hit.Kind.String()
		response.Point = vecArray(result.Hit.Point)
		response.Normal = vecArray(result.Hit.Normal)
		response.Distance = result.Hit.T
		response.Properties = map[string]interface{}{"material": materialProps}
	}
	writeJSON(w, http.StatusOK, response)
}

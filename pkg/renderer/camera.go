package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PixelSize returns the width and height of one pixel on the near plane
func PixelSize(camera scene.Camera) (pixelWidth, pixelHeight float64) {
	pixelWidth = (camera.NearPlane.Right - camera.NearPlane.Left) / float64(camera.Width)
	pixelHeight = (camera.NearPlane.Top - camera.NearPlane.Bottom) / float64(camera.Height)
	return pixelWidth, pixelHeight
}

// Basis returns the camera frame: u points right, v up and w opposite the gaze
func Basis(camera scene.Camera) (u, v, w core.Vec3) {
	w = camera.Gaze.Normalize().Negate()
	u = camera.Up.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v, w
}

// GenerateRay returns the camera ray through the center of pixel (row, col).
// Row 0 is the top of the image. The direction runs from the camera to the
// sample point on the near plane and is not normalized.
func GenerateRay(camera scene.Camera, row, col int, pixelWidth, pixelHeight float64) core.Ray {
	u, v, w := Basis(camera)

	planeCenter := camera.Position.Add(w.Negate().Multiply(camera.NearDistance))
	topLeft := planeCenter.
		Add(u.Multiply(camera.NearPlane.Left)).
		Add(v.Multiply(camera.NearPlane.Top))

	su := (float64(col) + 0.5) * pixelWidth
	sv := (float64(row) + 0.5) * pixelHeight
	sample := topLeft.Add(u.Multiply(su)).Subtract(v.Multiply(sv))

	return core.NewRay(camera.Position, sample.Subtract(camera.Position))
}

package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NearPlane is the image rectangle on the near plane, in camera space
type NearPlane struct {
	Left, Right, Bottom, Top float64
}

// Camera describes a pinhole camera and the image it produces
type Camera struct {
	Position     core.Vec3
	Gaze         core.Vec3 // Viewing direction, need not be unit length
	Up           core.Vec3
	NearPlane    NearPlane
	NearDistance float64
	Width        int    // Image width in pixels
	Height       int    // Image height in pixels
	ImageName    string // Output file name
}

// minBasisLength is the smallest |gaze x up| that still yields a usable basis
const minBasisLength = 1e-9

// Validate checks that the camera describes a usable image
func (c Camera) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: camera %q has resolution %dx%d", ErrInvalidScene, c.ImageName, c.Width, c.Height)
	}
	if c.NearPlane.Right == c.NearPlane.Left || c.NearPlane.Top == c.NearPlane.Bottom {
		return fmt.Errorf("%w: camera %q has an empty near plane", ErrInvalidScene, c.ImageName)
	}
	if c.Gaze.IsZero() {
		return fmt.Errorf("%w: camera %q has a zero gaze vector", ErrInvalidScene, c.ImageName)
	}
	if c.Up.Normalize().Cross(c.Gaze.Normalize()).Length() < minBasisLength {
		return fmt.Errorf("%w: camera %q gaze is parallel to up", ErrInvalidScene, c.ImageName)
	}
	return nil
}

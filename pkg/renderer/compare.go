package renderer

import "fmt"

// FrameDiff summarizes how two frames of the same size differ
type FrameDiff struct {
	Pixels     int // Pixels compared
	Mismatched int // Pixels with a channel differing by more than the tolerance
	MaxDelta   int // Largest per-channel difference seen
}

// CompareFrames counts pixels whose channels differ by more than tolerance
func CompareFrames(a, b *Frame, tolerance int) (FrameDiff, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return FrameDiff{}, fmt.Errorf("frame size mismatch: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	diff := FrameDiff{Pixels: a.Width * a.Height}
	for i := 0; i < len(a.Pix); i += 3 {
		mismatch := false
		for c := 0; c < 3; c++ {
			delta := int(a.Pix[i+c]) - int(b.Pix[i+c])
			if delta < 0 {
				delta = -delta
			}
			diff.MaxDelta = max(diff.MaxDelta, delta)
			if delta > tolerance {
				mismatch = true
			}
		}
		if mismatch {
			diff.Mismatched++
		}
	}
	return diff, nil
}

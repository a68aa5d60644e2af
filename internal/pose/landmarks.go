// Package pose turns raw body landmarks into the signals that drive the
// gallery: a wide-arms gesture flag and a continuous viewer-offset estimate.
package pose

import "math"

// Body landmark indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
// Only the shoulders, wrists and hips are consumed by this package; the
// remaining indices are listed for boundary validation and debugging.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	NumLandmarks  = 33

	// MinLandmarks is the smallest landmark count that can carry a usable
	// pose: the highest index the classifier reads is RightWrist (16).
	MinLandmarks = 17
)

// Landmark is a single normalized body-joint coordinate in [0,1]x[0,1]
// image space. Visibility is the tracker's per-point confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// LandmarkSet holds one frame's worth of landmarks, addressed by pose
// index. A nil entry means the tracker did not report that point.
type LandmarkSet []*Landmark

// FromPoints builds a LandmarkSet from a dense landmark array, as produced
// by the detector boundary. Every entry in the input is marked present.
func FromPoints(points []Landmark) LandmarkSet {
	set := make(LandmarkSet, len(points))
	for i := range points {
		p := points[i]
		set[i] = &p
	}
	return set
}

// At returns the landmark at index i, or nil if the index is absent or out
// of range.
func (s LandmarkSet) At(i int) *Landmark {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Sufficient reports whether the set carries enough landmarks for the
// geometry helpers. Callers short-circuit to neutral results when it is
// false rather than erroring.
func (s LandmarkSet) Sufficient() bool {
	return len(s) >= MinLandmarks
}

// torsoIndices are the points averaged for the viewer's center estimate.
var torsoIndices = [...]int{LeftShoulder, RightShoulder, LeftHip, RightHip}

// CenterOffset estimates the viewer's torso-center displacement from image
// center as a pair in [-1,1]. Absent torso landmarks are skipped and do not
// count toward the average; with no torso landmarks at all, or with an
// insufficient set, the offset is (0,0).
func CenterOffset(set LandmarkSet) (x, y float64) {
	if !set.Sufficient() {
		return 0, 0
	}

	var sumX, sumY float64
	var n int
	for _, idx := range torsoIndices {
		lm := set.At(idx)
		if lm == nil {
			continue
		}
		sumX += lm.X
		sumY += lm.Y
		n++
	}
	if n == 0 {
		return 0, 0
	}

	// Rescale the [0,1] average into [-1,1] around image center.
	return (sumX/float64(n) - 0.5) * 2, (sumY/float64(n) - 0.5) * 2
}

// ShoulderWidth returns the Euclidean distance between the two shoulder
// landmarks. It is the scale reference for all classifier thresholds: a
// viewer close to the camera produces proportionally larger raw distances.
// Returns 0 when either shoulder is absent.
func ShoulderWidth(set LandmarkSet) float64 {
	left := set.At(LeftShoulder)
	right := set.At(RightShoulder)
	if left == nil || right == nil {
		return 0
	}

	dx := left.X - right.X
	dy := left.Y - right.Y
	return math.Sqrt(dx*dx + dy*dy)
}

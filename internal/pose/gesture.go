package pose

import "math"

// Wide-arms classifier thresholds. Both are expressed in shoulder widths so
// the classifier is invariant to the viewer's distance from the camera.
const (
	// WideArmsSpanRatio is the minimum wrist-to-wrist horizontal span,
	// in shoulder widths. A fully outstretched arm span is roughly 3x
	// shoulder width, so 2x leaves margin for noise while still
	// rejecting partial raises.
	WideArmsSpanRatio = 2.0

	// WristDropTolerance is how far below shoulder height a wrist may
	// sit, in shoulder widths. Rejects poses with arms spread but
	// hanging low.
	WristDropTolerance = 0.15
)

// ClassifyWideArms reports whether the landmarks describe a wide-arms
// pose: wrists spread wider than WideArmsSpanRatio shoulder widths, with
// both wrists at or near shoulder height. Returns false, never an error,
// when the set is insufficient or the shoulders are degenerate.
func ClassifyWideArms(set LandmarkSet) bool {
	if !set.Sufficient() {
		return false
	}

	leftShoulder := set.At(LeftShoulder)
	rightShoulder := set.At(RightShoulder)
	leftWrist := set.At(LeftWrist)
	rightWrist := set.At(RightWrist)
	if leftShoulder == nil || rightShoulder == nil || leftWrist == nil || rightWrist == nil {
		return false
	}

	width := ShoulderWidth(set)
	if width <= 0 {
		return false
	}

	// Span condition: horizontal wrist distance versus shoulder width.
	span := math.Abs(leftWrist.X - rightWrist.X)
	if span <= WideArmsSpanRatio*width {
		return false
	}

	// Elevation condition: image Y grows downward, so a positive
	// wrist-minus-shoulder difference means the wrist hangs below.
	if leftWrist.Y-leftShoulder.Y > WristDropTolerance*width {
		return false
	}
	if rightWrist.Y-rightShoulder.Y > WristDropTolerance*width {
		return false
	}

	return true
}

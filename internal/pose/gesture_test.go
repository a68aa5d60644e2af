package pose

import "testing"

// wideArmsSet builds a full 33-point set with the shoulders at
// (0.4,0.5)/(0.6,0.5) and wrists spread to the image edges at shoulder
// height. Unused indices sit at image center with full visibility.
func wideArmsSet() LandmarkSet {
	points := make([]Landmark, NumLandmarks)
	for i := range points {
		points[i] = Landmark{X: 0.5, Y: 0.5, Visibility: 1.0}
	}
	points[LeftShoulder] = Landmark{X: 0.4, Y: 0.5, Visibility: 1.0}
	points[RightShoulder] = Landmark{X: 0.6, Y: 0.5, Visibility: 1.0}
	points[LeftWrist] = Landmark{X: 0.0, Y: 0.45, Visibility: 1.0}
	points[RightWrist] = Landmark{X: 1.0, Y: 0.45, Visibility: 1.0}
	return FromPoints(points)
}

func TestClassifyWideArms_Detected(t *testing.T) {
	// Shoulder width 0.2, span 1.0 > 0.4, wrists slightly above
	// shoulder height.
	if !ClassifyWideArms(wideArmsSet()) {
		t.Error("expected wide-arms pose to classify true")
	}
}

func TestClassifyWideArms_SpanTooNarrow(t *testing.T) {
	set := wideArmsSet()
	// Span 0.4 is exactly 2x shoulder width; the condition is strictly
	// greater-than, so this must not classify.
	set[LeftWrist] = &Landmark{X: 0.3, Y: 0.45, Visibility: 1.0}
	set[RightWrist] = &Landmark{X: 0.7, Y: 0.45, Visibility: 1.0}

	if ClassifyWideArms(set) {
		t.Error("expected narrow span to classify false")
	}
}

func TestClassifyWideArms_WristsHangingLow(t *testing.T) {
	set := wideArmsSet()
	// Wide span but wrists well below shoulder height (drop 0.2 against
	// a tolerance of 0.15*0.2 = 0.03).
	set[LeftWrist] = &Landmark{X: 0.0, Y: 0.7, Visibility: 1.0}
	set[RightWrist] = &Landmark{X: 1.0, Y: 0.7, Visibility: 1.0}

	if ClassifyWideArms(set) {
		t.Error("expected low wrists to classify false")
	}
}

func TestClassifyWideArms_InsufficientLandmarks(t *testing.T) {
	for _, n := range []int{0, 1, 11, 16} {
		set := make(LandmarkSet, n)
		for i := range set {
			set[i] = &Landmark{X: 0.5, Y: 0.5}
		}
		if ClassifyWideArms(set) {
			t.Errorf("expected false for %d landmarks", n)
		}
	}
}

func TestClassifyWideArms_MissingWrist(t *testing.T) {
	set := wideArmsSet()
	set[RightWrist] = nil

	if ClassifyWideArms(set) {
		t.Error("expected false when a wrist landmark is absent")
	}
}

func TestClassifyWideArms_ScaleInvariant(t *testing.T) {
	// Uniformly scaling all coordinates around a fixed anchor must not
	// change the result: both conditions are normalized by shoulder
	// width, which scales along with the span and the wrist drop.
	base := wideArmsSet()
	const anchorX, anchorY = 0.5, 0.5

	for _, scale := range []float64{0.25, 0.5, 0.9} {
		scaled := make(LandmarkSet, len(base))
		for i, lm := range base {
			if lm == nil {
				continue
			}
			scaled[i] = &Landmark{
				X:          anchorX + (lm.X-anchorX)*scale,
				Y:          anchorY + (lm.Y-anchorY)*scale,
				Visibility: lm.Visibility,
			}
		}

		if got := ClassifyWideArms(scaled); got != ClassifyWideArms(base) {
			t.Errorf("scale %.2f changed classification to %v", scale, got)
		}
	}
}

func TestClassifyWideArms_DegenerateShoulders(t *testing.T) {
	set := wideArmsSet()
	// Coincident shoulders give a zero normalization reference.
	set[LeftShoulder] = &Landmark{X: 0.5, Y: 0.5}
	set[RightShoulder] = &Landmark{X: 0.5, Y: 0.5}

	if ClassifyWideArms(set) {
		t.Error("expected false for zero shoulder width")
	}
}

package pose

// DefaultScore is the tracking confidence assumed when the reference
// landmark carries no visibility value.
const DefaultScore = 0.5

// Signal is the per-sample summary consumed by the focus machine and the
// animator. It is immutable: each pose sample produces a fresh value and a
// nil Signal means no tracked subject.
type Signal struct {
	// OffsetX and OffsetY are the viewer's torso-center displacement
	// from image center, each in [-1,1].
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`

	// Gesture is true when the sample shows the wide-arms pose.
	Gesture bool `json:"gesture"`

	// Score is the overall tracking confidence in [0,1].
	Score float64 `json:"score"`
}

// Aggregate condenses one landmark set into a Signal. An empty set yields
// nil. The transform is stateless; temporal smoothing is the animator's
// job, not this package's.
func Aggregate(set LandmarkSet) *Signal {
	if len(set) == 0 {
		return nil
	}

	x, y := CenterOffset(set)

	score := DefaultScore
	if nose := set.At(Nose); nose != nil && nose.Visibility > 0 {
		score = nose.Visibility
	}

	return &Signal{
		OffsetX: x,
		OffsetY: y,
		Gesture: ClassifyWideArms(set),
		Score:   score,
	}
}

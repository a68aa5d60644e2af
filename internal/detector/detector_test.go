package detector

import (
	"errors"
	"testing"

	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

func TestMockDetector_Detect(t *testing.T) {
	mock := NewMockDetector()

	// Default: no subject
	set, err := mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(set) != 0 {
		t.Errorf("expected empty set, got %d landmarks", len(set))
	}

	mock.SetLandmarks(WideArmsLandmarks())
	set, err = mock.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(set) != pose.NumLandmarks {
		t.Errorf("expected %d landmarks, got %d", pose.NumLandmarks, len(set))
	}
}

func TestMockDetector_Error(t *testing.T) {
	mock := NewMockDetector()
	wantErr := errors.New("detector unavailable")
	mock.SetError(wantErr)

	if _, err := mock.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestWideArmsLandmarks_Classify(t *testing.T) {
	if !pose.ClassifyWideArms(WideArmsLandmarks()) {
		t.Error("wide-arms fixture must classify as the gesture")
	}
}

func TestRestingLandmarks_Classify(t *testing.T) {
	if pose.ClassifyWideArms(RestingLandmarks()) {
		t.Error("resting fixture must not classify as the gesture")
	}
}

func TestRestingLandmarks_Signal(t *testing.T) {
	sig := pose.Aggregate(RestingLandmarks())
	if sig == nil {
		t.Fatal("expected a signal for the resting fixture")
	}
	if sig.Gesture {
		t.Error("resting fixture produced a gesture flag")
	}
	if sig.Score != 0.99 {
		t.Errorf("score = %f, want nose visibility 0.99", sig.Score)
	}
}

package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

// solidFrame creates a single-channel frame filled with the given value.
func solidFrame(t *testing.T, value uint8) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC1)
	mat.AddUChar(value)
	return mat
}

func TestMotionGate_FirstFramePrimes(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame := solidFrame(t, 128)
	defer frame.Close()

	detected, percent := gate.Detect(&frame)
	if detected {
		t.Error("first frame must prime the baseline, not report motion")
	}
	if percent != 0 {
		t.Errorf("change percent = %f, want 0 on first frame", percent)
	}
}

func TestMotionGate_StaticScene(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame := solidFrame(t, 128)
	defer frame.Close()

	gate.Detect(&frame)
	detected, percent := gate.Detect(&frame)
	if detected {
		t.Errorf("identical frames reported motion (%.2f%% changed)", percent)
	}
}

func TestMotionGate_SceneChange(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	dark := solidFrame(t, 10)
	defer dark.Close()
	bright := solidFrame(t, 200)
	defer bright.Close()

	gate.Detect(&dark)
	detected, percent := gate.Detect(&bright)
	if !detected {
		t.Errorf("full-frame change not detected (%.2f%% changed)", percent)
	}
}

func TestMotionGate_Reset(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	dark := solidFrame(t, 10)
	defer dark.Close()
	bright := solidFrame(t, 200)
	defer bright.Close()

	gate.Detect(&dark)
	gate.Reset()

	// After reset the bright frame primes a fresh baseline.
	detected, _ := gate.Detect(&bright)
	if detected {
		t.Error("priming frame after Reset must not report motion")
	}
}

func TestMotionGate_NilFrame(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	if detected, _ := gate.Detect(nil); detected {
		t.Error("nil frame must not report motion")
	}
}

func TestMockCamera_ReadWhileClosed(t *testing.T) {
	cam := NewMockCamera()

	if _, err := cam.ReadFrame(); err != ErrCameraNotOpen {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	frame.Close()

	if cam.ReadCount() != 1 {
		t.Errorf("ReadCount() = %d, want 1", cam.ReadCount())
	}
}

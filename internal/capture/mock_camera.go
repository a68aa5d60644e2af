package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera is a test implementation of the Camera interface that serves
// synthetic frames without touching a device.
type MockCamera struct {
	fps       int
	open      bool
	frame     *gocv.Mat
	readErr   error
	readCount int
	mu        sync.Mutex
}

// NewMockCamera creates a MockCamera. Until SetFrame is called, ReadFrame
// serves a blank gray frame.
func NewMockCamera() *MockCamera {
	return &MockCamera{fps: DefaultFPS}
}

// SetFrame sets the frame returned by ReadFrame. The mock clones it on
// every read so callers can close their copy freely.
func (m *MockCamera) SetFrame(frame *gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = frame
}

// SetReadError makes ReadFrame fail with the given error.
func (m *MockCamera) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// ReadCount returns how many times ReadFrame has been called.
func (m *MockCamera) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount
}

// Open marks the mock camera as open.
func (m *MockCamera) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

// Close marks the mock camera as closed.
func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

// ReadFrame returns a clone of the configured frame, or a blank frame when
// none was set.
func (m *MockCamera) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, ErrCameraNotOpen
	}
	if m.readErr != nil {
		return nil, m.readErr
	}

	m.readCount++

	if m.frame != nil {
		clone := m.frame.Clone()
		return &clone, nil
	}

	blank := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	return &blank, nil
}

// SetFPS records the requested frame rate.
func (m *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fps = fps
}

// FPS returns the recorded frame rate.
func (m *MockCamera) FPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

// IsOpen reports whether Open has been called without a matching Close.
func (m *MockCamera) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

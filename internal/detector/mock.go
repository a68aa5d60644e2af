package detector

import (
	"gocv.io/x/gocv"

	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	landmarks pose.LandmarkSet
	err       error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetLandmarks sets the landmark set that will be returned by Detect.
// Pass nil to simulate "no subject in frame".
func (m *MockDetector) SetLandmarks(set pose.LandmarkSet) {
	m.landmarks = set
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured landmarks or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (pose.LandmarkSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.landmarks, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// WideArmsLandmarks returns a preset landmark set for a subject standing
// centered with both arms stretched out at shoulder height.
func WideArmsLandmarks() pose.LandmarkSet {
	points := standingPoints()

	points[pose.LeftWrist] = pose.Landmark{X: 0.05, Y: 0.38, Visibility: 0.97}
	points[pose.RightWrist] = pose.Landmark{X: 0.95, Y: 0.38, Visibility: 0.97}
	points[pose.LeftElbow] = pose.Landmark{X: 0.22, Y: 0.40, Visibility: 0.96}
	points[pose.RightElbow] = pose.Landmark{X: 0.78, Y: 0.40, Visibility: 0.96}

	return pose.FromPoints(points)
}

// RestingLandmarks returns a preset landmark set for a subject standing
// centered with arms hanging at their sides.
func RestingLandmarks() pose.LandmarkSet {
	points := standingPoints()

	points[pose.LeftWrist] = pose.Landmark{X: 0.36, Y: 0.68, Visibility: 0.92}
	points[pose.RightWrist] = pose.Landmark{X: 0.64, Y: 0.68, Visibility: 0.92}
	points[pose.LeftElbow] = pose.Landmark{X: 0.37, Y: 0.54, Visibility: 0.95}
	points[pose.RightElbow] = pose.Landmark{X: 0.63, Y: 0.54, Visibility: 0.95}

	return pose.FromPoints(points)
}

// standingPoints fills all 33 pose landmarks for a centered standing
// subject. Gesture fixtures overwrite the arm indices.
func standingPoints() []pose.Landmark {
	points := make([]pose.Landmark, pose.NumLandmarks)
	for i := range points {
		points[i] = pose.Landmark{X: 0.5, Y: 0.5, Visibility: 0.8}
	}

	points[pose.Nose] = pose.Landmark{X: 0.5, Y: 0.25, Visibility: 0.99}
	points[pose.LeftShoulder] = pose.Landmark{X: 0.4, Y: 0.4, Visibility: 0.98}
	points[pose.RightShoulder] = pose.Landmark{X: 0.6, Y: 0.4, Visibility: 0.98}
	points[pose.LeftHip] = pose.Landmark{X: 0.44, Y: 0.65, Visibility: 0.9}
	points[pose.RightHip] = pose.Landmark{X: 0.56, Y: 0.65, Visibility: 0.9}

	return points
}

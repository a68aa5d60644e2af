// Package detector provides body-pose detection interfaces for the gallery
// pipeline.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

// Detector defines the interface for body-pose estimation implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the tracked subject's
	// landmarks. Returns an empty set if no subject is visible.
	Detect(frame *gocv.Mat) (pose.LandmarkSet, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

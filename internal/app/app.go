// Package app wires the photo wall together: capture, pose detection,
// focus state and per-frame animation.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ikeee/Photos-Wall-3D/internal/animate"
	"github.com/ikeee/Photos-Wall-3D/internal/capture"
	"github.com/ikeee/Photos-Wall-3D/internal/detector"
	"github.com/ikeee/Photos-Wall-3D/internal/focus"
	"github.com/ikeee/Photos-Wall-3D/internal/gallery"
	"github.com/ikeee/Photos-Wall-3D/internal/layout"
	"github.com/ikeee/Photos-Wall-3D/internal/pose"
	"github.com/ikeee/Photos-Wall-3D/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the pose sample rate while the room is still.
	IdleFPS = 5
	// ActiveFPS is the pose sample rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to
	// idle sampling.
	IdleTimeoutMs = 2000
	// RenderFPS drives the animation loop. The render client consumes
	// whatever the latest frame is; pose samples arrive far slower.
	RenderFPS = 30
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	GalleryDir   string
	CameraID     int
	MotionThresh float64
	SphereRadius float64
}

// App orchestrates the pose pipeline and the animation loop.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionGate
	detector   detector.Detector
	collection *gallery.Collection
	layout     *layout.Layout
	animator   *animate.Animator
	machine    *focus.Machine

	enabled     bool
	stopCh      chan struct{}
	signal      *pose.Signal
	frame       animate.Frame
	lastEventID string
	mu          sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}
	radius := config.SphereRadius
	if radius <= 0 {
		radius = layout.DefaultRadius
	}

	l := layout.New(radius)

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionGate(motionThreshold),
		collection: gallery.NewCollection(nil),
		layout:     l,
		animator:   animate.New(l),
		machine:    focus.New(),
		enabled:    false,
		stopCh:     nil,
	}
	a.machine.OnChange(a.recordFocusChange)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// LoadGallery scans the configured image directory and installs the
// collection into the focus machine and the layout.
func (a *App) LoadGallery() error {
	col, err := gallery.LoadDir(a.config.GalleryDir)
	if err != nil {
		return err
	}
	a.SetCollection(col)
	log.Printf("Loaded %d gallery items from %s", col.Len(), a.config.GalleryDir)
	return nil
}

// SetCollection replaces the gallery collection. The layout is recomputed
// and the focus machine's selectable set updated.
func (a *App) SetCollection(col *gallery.Collection) {
	a.mu.Lock()
	a.collection = col
	a.mu.Unlock()

	a.layout.Update(col.IDs())
	a.machine.SetItems(col.IDs())
}

// Collection returns the current gallery collection.
func (a *App) Collection() *gallery.Collection {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.collection
}

// SetEnabled enables or disables pose tracking. While disabled the sample
// loop idles and the wall falls back to its idle rotation.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	if !enabled {
		a.signal = nil
	}
	a.mu.Unlock()
}

// IsEnabled returns whether pose tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the capture camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Focus returns the focus state machine.
func (a *App) Focus() *focus.Machine {
	return a.machine
}

// Animator returns the transform animator.
func (a *App) Animator() *animate.Animator {
	return a.animator
}

// Signal returns the most recent pose signal, or nil when no subject is
// tracked. Only the latest sample is retained.
func (a *App) Signal() *pose.Signal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.signal
}

// Frame returns the most recent animation frame snapshot.
func (a *App) Frame() animate.Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frame
}

// Start begins the sample and render loops.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runSampleLoop(a.stopCh)
	go a.runRenderLoop(a.stopCh)

	log.Println("Pose pipeline started")
	return nil
}

// Stop halts both loops and releases resources. The focus machine is
// closed first so its pending auto-release cannot fire into a torn-down
// app.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.machine.Close()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pose pipeline stopped")
}

// recordFocusChange persists focus transitions as session telemetry.
func (a *App) recordFocusChange(state focus.State) {
	if a.config.Store == nil {
		return
	}
	events := a.config.Store.Events()

	if state.FocusedID != "" {
		title := ""
		if item, ok := a.Collection().Get(state.FocusedID); ok {
			title = item.Title
		}
		id, err := events.Create(state.FocusedID, title, state.FocusedSince)
		if err != nil {
			log.Printf("Failed to record focus event: %v", err)
			return
		}
		a.mu.Lock()
		a.lastEventID = id
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	eventID := a.lastEventID
	a.lastEventID = ""
	a.mu.Unlock()

	if eventID == "" {
		return
	}
	if err := events.MarkReleased(eventID, time.Now()); err != nil {
		log.Printf("Failed to record focus release: %v", err)
	}
}

func (a *App) setSignal(sig *pose.Signal) {
	a.mu.Lock()
	a.signal = sig
	a.mu.Unlock()
}

func (a *App) setFrame(frame animate.Frame) {
	a.mu.Lock()
	a.frame = frame
	a.mu.Unlock()
}

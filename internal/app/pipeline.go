package app

import (
	"log"
	"time"

	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

// runSampleLoop is the pose sampling loop. It manages the idle/active
// frame-rate switch from motion detection and feeds each sample through
// the aggregator into the focus machine.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run pose detection, aggregate into a signal
// 4. Gesture in signal -> focus trigger (throttled by the machine)
// 5. After 2s without motion, switch back to idle and drop the signal
//
// Only the most recent signal is kept; if samples arrive faster than they
// are consumed, earlier ones are simply superseded.
func (a *App) runSampleLoop(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					a.setSignal(nil) // no subject worth tracking
					log.Println("Switched to idle mode")
				}
			}

			// Pose detection only runs in active mode
			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			landmarks, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			a.processSample(landmarks)
		}
	}
}

// processSample aggregates one landmark set into the latest signal and
// feeds a detected gesture into the focus machine.
func (a *App) processSample(landmarks pose.LandmarkSet) {
	sig := pose.Aggregate(landmarks)
	a.setSignal(sig)

	if sig != nil && sig.Gesture {
		if a.machine.Trigger() {
			log.Printf("Gesture focused item %s", a.machine.FocusedID())
		}
	}
}

// runRenderLoop advances the animator once per render frame and publishes
// the resulting snapshot for the scene broadcaster.
func (a *App) runRenderLoop(stopCh <-chan struct{}) {
	interval := time.Second / time.Duration(RenderFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			frame := a.animator.Advance(delta, a.Signal(), a.machine.FocusedID())
			a.setFrame(frame)
		}
	}
}

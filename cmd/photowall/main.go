package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ikeee/Photos-Wall-3D/internal/app"
	"github.com/ikeee/Photos-Wall-3D/internal/focus"
	"github.com/ikeee/Photos-Wall-3D/internal/server"
	"github.com/ikeee/Photos-Wall-3D/internal/store"
	"github.com/ikeee/Photos-Wall-3D/internal/tray"
)

const trackingKey = "tracking.enabled"

func main() {
	var (
		galleryDir = flag.String("gallery", "", "directory of images to place on the wall")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		cameraID   = flag.Int("camera", 0, "camera device id")
	)
	flag.Parse()

	fmt.Println("Photo Wall - Pose Driven 3D Gallery")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".photowall")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "photowall.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	dir := *galleryDir
	if dir == "" {
		dir = filepath.Join(dataDir, "gallery")
	}

	application := app.New(app.Config{
		Store:      st,
		GalleryDir: dir,
		CameraID:   *cameraID,
	})
	if err := application.LoadGallery(); err != nil {
		log.Printf("Gallery not loaded (%v), wall starts empty", err)
	}

	// Restore the persisted tracking preference. Tracking stays off until
	// the user has turned it on at least once.
	enabled := false
	if v, err := st.Settings().Get(trackingKey); err == nil {
		enabled = v == "true"
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to read tracking setting: %v", err)
	}
	application.SetEnabled(enabled)

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving render client from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       application,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New(enabled)
	t.OnToggle(func(on bool) {
		application.SetEnabled(on)
		value := "false"
		if on {
			value = "true"
		}
		if err := st.Settings().Set(trackingKey, value); err != nil {
			log.Printf("Failed to persist tracking setting: %v", err)
		}
	})
	t.OnViewer(func() {
		openBrowser("http://localhost" + *addr)
	})
	t.OnQuit(func() {
		application.Stop()
	})

	application.Focus().OnChange(func(state focus.State) {
		title := ""
		if item, ok := application.Collection().Get(state.FocusedID); ok {
			title = item.Title
		}
		t.SetFocused(title)
	})

	// Blocks until quit; systray requires the main goroutine.
	t.Run()
}

// findWebDir searches for the render client directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.photowall/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".photowall", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

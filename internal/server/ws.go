package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"

	"github.com/ikeee/Photos-Wall-3D/internal/animate"
	"github.com/ikeee/Photos-Wall-3D/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// broadcastInterval paces the scene stream at roughly the render rate.
const broadcastInterval = 33 * time.Millisecond

// SceneHandler streams per-frame item transforms to render clients and
// reads camera pose updates back from them.
type SceneHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewSceneHandler creates a SceneHandler bound to the given app.
func NewSceneHandler(a *app.App) *SceneHandler {
	h := &SceneHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// cameraMessage is the client-to-host camera pose report. The camera is
// owned by the render client; the host only reads it.
type cameraMessage struct {
	Type       string     `json:"type"`
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"` // x, y, z, w
}

// sceneItem is the wire form of one item's frame transform.
type sceneItem struct {
	ID          string     `json:"id"`
	Position    [3]float64 `json:"position"`
	Quaternion  [4]float64 `json:"quaternion"`
	Scale       [3]float64 `json:"scale"`
	RenderOrder int        `json:"renderOrder"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SceneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Read loop: camera pose updates keep the focused-item anchor in
	// sync with the client's orbit controls.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg cameraMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "camera" {
			continue
		}

		h.app.Animator().SetCamera(animate.Camera{
			Position: mgl64.Vec3{msg.Position[0], msg.Position[1], msg.Position[2]},
			Orientation: mgl64.Quat{
				W: msg.Quaternion[3],
				V: mgl64.Vec3{msg.Quaternion[0], msg.Quaternion[1], msg.Quaternion[2]},
			}.Normalize(),
		})
	}
}

// broadcast sends the latest scene frame to all connected clients.
func (h *SceneHandler) broadcast() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, err := json.Marshal(sceneMessage(h.app.Frame()))
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}

// sceneMessage converts a frame snapshot into its wire form.
func sceneMessage(frame animate.Frame) map[string]any {
	items := make([]sceneItem, len(frame.Items))
	for i, item := range frame.Items {
		items[i] = sceneItem{
			ID:          item.ID,
			Position:    vec3Wire(item.Transform.Position),
			Quaternion:  quatWire(item.Transform.Orientation),
			Scale:       vec3Wire(item.Transform.Scale),
			RenderOrder: item.RenderOrder,
		}
	}

	return map[string]any{
		"type":      "scene",
		"timestamp": time.Now().UnixMilli(),
		"group":     quatWire(frame.Group),
		"focusedId": frame.FocusedID,
		"signal":    frame.Signal,
		"items":     items,
	}
}

func vec3Wire(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

func quatWire(q mgl64.Quat) [4]float64 {
	return [4]float64{q.V.X(), q.V.Y(), q.V.Z(), q.W}
}

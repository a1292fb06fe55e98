// Package messaging provides the websocket hub that pushes document-change
// notifications to preview clients. A preview client is a read-only view of
// one editor session (e.g. the live preview pane); on a notification it
// re-fetches the rendered canvas fragment. This is single-session fan-out,
// not collaborative editing: preview clients never send mutations.
package messaging

import (
	"encoding/json"
	"sync"

	"github.com/DecorForge/proposalcraft-go/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// PreviewClient represents one connected preview websocket.
type PreviewClient struct {
	Conn      *websocket.Conn
	SessionID string
	Send      chan []byte
}

// PreviewEvent is the JSON message pushed to preview clients.
type PreviewEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// PreviewHub manages preview clients grouped by editor session.
type PreviewHub struct {
	sessionClients map[string]map[*PreviewClient]bool
	mu             sync.RWMutex
	logger         *logging.ChanneledLogger
}

// NewPreviewHub creates a hub. Call Register/Unregister from the websocket
// handler and NotifyDocumentChanged from the editor service.
func NewPreviewHub(logger *logging.ChanneledLogger) *PreviewHub {
	return &PreviewHub{
		sessionClients: make(map[string]map[*PreviewClient]bool),
		logger:         logger,
	}
}

// Register adds a client and starts its write pump.
func (h *PreviewHub) Register(client *PreviewClient) {
	h.mu.Lock()
	if h.sessionClients[client.SessionID] == nil {
		h.sessionClients[client.SessionID] = make(map[*PreviewClient]bool)
	}
	h.sessionClients[client.SessionID][client] = true
	h.mu.Unlock()

	h.logger.SSE().Debug("Preview client registered", "sessionId", client.SessionID)
	go h.writePump(client)
}

// Unregister removes a client and closes its send channel.
func (h *PreviewHub) Unregister(client *PreviewClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessionClients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.sessionClients, client.SessionID)
	}
	h.logger.SSE().Debug("Preview client unregistered", "sessionId", client.SessionID)
}

// NotifyDocumentChanged pushes a documentChanged event to every preview
// client of the session. Clients with a full send buffer are skipped; the
// next notification catches them up.
func (h *PreviewHub) NotifyDocumentChanged(sessionID string) {
	payload, err := json.Marshal(PreviewEvent{Type: "documentChanged", SessionID: sessionID})
	if err != nil {
		h.logger.SSE().Error("Failed to encode preview event", "error", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessionClients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// ClientCount returns the number of connected preview clients for a session.
func (h *PreviewHub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessionClients[sessionID])
}

func (h *PreviewHub) writePump(client *PreviewClient) {
	defer client.Conn.Close()
	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.SSE().Debug("Preview write failed, dropping client",
				"sessionId", client.SessionID, "error", err.Error())
			h.Unregister(client)
			return
		}
	}
}

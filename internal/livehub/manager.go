// Package livehub fans freshly appended thread messages out to browsers
// watching a request thread over WebSocket. Events arrive via Redis
// Pub/Sub, so several server processes can share one hub topology.
package livehub

import (
	"log"

	"askmego/backend/internal/models"
)

// Manager owns the set of connected clients. All map access happens on the
// Run goroutine; the channels are the only way in.
type Manager struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.ThreadEvent
}

func NewManager() *Manager {
	return &Manager{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.ThreadEvent),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetID()] = client
			log.Printf("INFO: Live client %s watching request %d", client.GetID(), client.GetRequestID())

		case client := <-m.UnregisterCh:
			if _, ok := m.Clients[client.GetID()]; ok {
				delete(m.Clients, client.GetID())
				client.Close()
			}

		case event := <-m.BroadcastCh:
			m.fanOut(event)
		}
	}
}

// fanOut delivers an event to every client watching its thread. A client
// whose send channel is full is dropped rather than allowed to stall the
// hub.
func (m *Manager) fanOut(event models.ThreadEvent) {
	for id, client := range m.Clients {
		if client.GetRequestID() != event.RequestID {
			continue
		}
		select {
		case client.GetSendChannel() <- event:
		default:
			delete(m.Clients, id)
			client.Close()
			log.Printf("WARNING: Dropped slow live client %s", id)
		}
	}
}

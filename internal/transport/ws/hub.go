package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Dashboard message types
const (
	MsgAnalyticsUpdate MessageType = "analytics_update"
	MsgSurveyClosed    MessageType = "survey_closed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages live dashboard connections, grouped by survey
type Hub struct {
	// surveyID -> connID -> conn
	dashboards map[string]map[string]*Connection

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection is one dashboard subscribed to a survey
type Connection struct {
	ID       string
	SurveyID string
	AdminID  string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message for every dashboard of a survey. A Close
// message carries no frame: it closes the dashboards once every frame queued
// before it has been handed out.
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
	Close    bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		dashboards: make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.dashboards[conn.SurveyID] == nil {
				h.dashboards[conn.SurveyID] = make(map[string]*Connection)
			}
			h.dashboards[conn.SurveyID][conn.ID] = conn
			log.Printf("Dashboard %s connected to survey %s", conn.ID, conn.SurveyID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.dashboards[conn.SurveyID]; ok {
				if existing, ok := conns[conn.ID]; ok && existing == conn {
					delete(conns, conn.ID)
					close(conn.Send)
					log.Printf("Dashboard %s disconnected from survey %s", conn.ID, conn.SurveyID)
				}
				if len(conns) == 0 {
					delete(h.dashboards, conn.SurveyID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Close {
				h.mu.Lock()
				for _, conn := range h.dashboards[msg.SurveyID] {
					close(conn.Send)
				}
				delete(h.dashboards, msg.SurveyID)
				h.mu.Unlock()
				continue
			}

			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for _, conn := range h.dashboards[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Count returns the number of dashboards watching a survey
func (h *Hub) Count(surveyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.dashboards[surveyID])
}

// BroadcastToDashboards sends a message to every dashboard of a survey (implements service.Broadcaster)
func (h *Hub) BroadcastToDashboards(surveyID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WS Hub] Failed to encode %s for survey %s: %v", msgType, surveyID, err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSurvey closes every dashboard of a survey after the frames already
// broadcast to it (implements service.Broadcaster)
func (h *Hub) DisconnectSurvey(surveyID string) {
	h.broadcast <- &BroadcastMessage{SurveyID: surveyID, Close: true}
}

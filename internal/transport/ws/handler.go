package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"pulseboard/internal/model"
	"pulseboard/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// AnalyticsSource provides the rollup a dashboard starts from
type AnalyticsSource interface {
	Survey(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub       *Hub
	authSvc   *service.AuthService
	analytics AnalyticsSource
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, analytics AnalyticsSource) *Handler {
	return &Handler{
		hub:       hub,
		authSvc:   authSvc,
		analytics: analytics,
	}
}

// DashboardWS handles GET /v1/ws/surveys/{surveyId}/dashboard
func (h *Handler) DashboardWS(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateAdminToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	initial, err := h.analytics.Survey(r.Context(), surveyID)
	if errors.Is(err, service.ErrSurveyNotFound) {
		http.Error(w, "survey not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[WS Handler] Initial analytics for %s failed: %v", surveyID, err)
		http.Error(w, "analytics unavailable", http.StatusInternalServerError)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:       uuid.New().String(),
		SurveyID: surveyID,
		AdminID:  claims.AdminID,
		Send:     make(chan []byte, 256),
		Hub:      h.hub,
	}

	// Queue the current rollup before registering so it is the first frame
	if data, err := encode(MsgAnalyticsUpdate, initial); err == nil {
		conn.Send <- data
	}
	h.hub.Register(conn)

	log.Printf("Admin %s watching survey %s via WebSocket", claims.AdminID, surveyID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func encode(t MessageType, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: t, Payload: data})
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		// Dashboards are read-only; incoming frames only keep the connection alive
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

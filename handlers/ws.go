package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/daniarfurniture/finance-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes "something changed" events to connected dashboards.
type WSHandler struct {
	M *melody.Melody
}

type ledgerEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
}

func NewWSHandler() *WSHandler {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		utils.LogWebSocket("connected", m.Len())
	})
	m.HandleDisconnect(func(s *melody.Session) {
		utils.LogWebSocket("disconnected", m.Len())
	})
	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request. Clients only listen.
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// Notify broadcasts a committed write to every session.
func (h *WSHandler) Notify(entity, action string, id int64) {
	msg, err := json.Marshal(ledgerEvent{Entity: entity, Action: action, ID: id, At: time.Now()})
	if err != nil {
		return
	}
	if err := h.M.Broadcast(msg); err != nil {
		log.Printf("⚠️ Error broadcasting %s %s: %v", entity, action, err)
	}
}

func (h *WSHandler) Close() error {
	return h.M.Close()
}

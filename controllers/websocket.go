package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/teriyakki-jin/Churn-Guard-AI/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn is the connection surface the broadcast layer needs. Satisfied by
// *websocket.Conn; tests substitute in-memory connections.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one subscribed dashboard connection. Gorilla connections do not
// support concurrent writers, so every write goes through the client mutex.
type Client struct {
	mu     sync.Mutex
	conn   wsConn
	UserID uint
}

func (c *Client) write(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteMessage(websocket.TextMessage, msg)
}

// clients is written by every connecting and disconnecting request goroutine
// and read by concurrent predict handlers, so all access holds clientsMu.
var (
	clientsMu sync.Mutex
	clients   = make(map[wsConn]*Client)
)

func registerClient(conn wsConn, userID uint) *Client {
	client := &Client{conn: conn, UserID: userID}
	clientsMu.Lock()
	clients[conn] = client
	clientsMu.Unlock()
	return client
}

func unregisterClient(conn wsConn) {
	clientsMu.Lock()
	delete(clients, conn)
	clientsMu.Unlock()
	conn.Close()
}

// snapshotClients copies the registry so broadcasts iterate without holding
// the lock across network writes.
func snapshotClients() []*Client {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	snapshot := make([]*Client, 0, len(clients))
	for _, client := range clients {
		snapshot = append(snapshot, client)
	}
	return snapshot
}

// HandleWebSocket subscribes a dashboard client to the live prediction feed.
func HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userIDRaw, exists := c.Get("user_id")
	if !exists {
		conn.Close()
		return
	}

	var userID uint
	switch v := userIDRaw.(type) {
	case float64:
		userID = uint(v)
	case uint:
		userID = v
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID = uint(id)
		} else {
			conn.Close()
			return
		}
	default:
		conn.Close()
		return
	}

	registerClient(conn, userID)
	defer unregisterClient(conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// BroadcastPrediction pushes a new prediction record to all connected
// dashboard clients, with an explicit alert for high-risk customers.
func BroadcastPrediction(record models.PredictionHistory) {
	targets := snapshotClients()

	msg, _ := json.Marshal(record)
	for _, client := range targets {
		client.write(msg)
	}

	if record.RiskLevel != "High Risk" {
		return
	}
	alert := map[string]interface{}{
		"message":    "High churn risk customer detected!",
		"risk_level": record.RiskLevel,
		"score":      record.ChurnProbability,
		"data":       record,
	}
	alertMsg, _ := json.Marshal(alert)
	for _, client := range targets {
		client.write(alertMsg)
	}
}

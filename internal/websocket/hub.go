package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/Tigierre/contractguardian/internal/dto"
	"github.com/Tigierre/contractguardian/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Subscribers map: AnalysisID -> List of Clients (multi-tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AnalysisID] = append(h.clients[client.AnalysisID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Progress subscriber registered", map[string]interface{}{"analysis_id": client.AnalysisID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AnalysisID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AnalysisID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AnalysisID]) == 0 {
					delete(h.clients, client.AnalysisID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendProgress pushes a progress update to every subscriber of the analysis,
// locally and (via Redis) on other instances.
func (h *Hub) SendProgress(progress dto.ProgressMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "analysis_progress",
		"data": progress,
	})

	h.mu.RLock()
	clients, localFound := h.clients[progress.AnalysisId]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Slow consumer. Only the unregister handler closes Send,
				// so a client reported twice is closed once.
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"analysis_id": progress.AnalysisId})
				h.unregister <- client
			}
		}
	}

	// Publish for subscribers connected to other instances.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_analysis_id": progress.AnalysisId.String(),
			"message":            data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to "cluster_events" and forwards messages
	// for the analyses it has local subscribers for.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetAnalysisID string          `json:"target_analysis_id"`
			Message          json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		aid, err := uuid.Parse(payload.TargetAnalysisID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[aid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

package trainerws

import (
	"context"
	"encoding/json"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"

	"github.com/JunaidParamberi/MacroMateBack/internal/models"
	"github.com/JunaidParamberi/MacroMateBack/internal/services"
)

// DefaultConversation is the thread clients land on when they connect
// without naming one.
const DefaultConversation = "default"

// Hub fans trainer chat traffic out to every socket attached to the same
// conversation, so a phone and a tablet watching the same thread stay in
// sync.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	conversationID string
	send           chan []byte
}

type sender interface {
	SendMessage(ctx context.Context, conversationID, content string) (*services.TrainerExchange, error)
}

type Message struct {
	Type           string                              `json:"type"`
	ConversationID string                              `json:"conversation_id"`
	MessageID      string                              `json:"message_id,omitempty"`
	Role           models.MessageRole                  `json:"role,omitempty"`
	Content        string                              `json:"content"`
	Automation     *models.TrainerAutomationSuggestion `json:"automation,omitempty"`
	Timestamp      string                              `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, conversationID string) *Client {
	if conversationID == "" {
		conversationID = DefaultConversation
	}
	return &Client{
		hub:            hub,
		conn:           conn,
		conversationID: conversationID,
		send:           make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.conversationID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.conversationID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.conversationID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.conversationID)
			}
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		logrus.WithError(err).Error("trainer hub encode message")
		return
	}

	set, ok := h.clients[message.ConversationID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- encoded:
		default:
			// Slow client. Drop the frame rather than closing the channel
			// here; only the unregister path may close it, otherwise a
			// concurrent writeError could send on a closed channel.
			logrus.WithField("conversation_id", message.ConversationID).
				Warn("trainer hub dropped frame for slow client")
		}
	}
}

func (c *Client) ReadPump(service sender) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		exchange, err := service.SendMessage(context.Background(), c.conversationID, incoming.Content)
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		c.hub.broadcast <- messageFrame(c.conversationID, exchange.UserMessage, nil)
		c.hub.broadcast <- messageFrame(c.conversationID, exchange.AssistantMessage, exchange.Automation)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func messageFrame(conversationID string, msg models.TrainerMessage, automation *models.TrainerAutomationSuggestion) *Message {
	return &Message{
		Type:           "message",
		ConversationID: conversationID,
		MessageID:      msg.ID,
		Role:           msg.Role,
		Content:        msg.Content,
		Automation:     automation,
		Timestamp:      msg.Timestamp.UTC().Format(time.RFC3339),
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Message{
		Type:           "error",
		ConversationID: client.conversationID,
		Content:        message,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

package notifier

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event - конверт уведомления, уходит каждому подключённому клиенту
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Notifier рассылает события без гарантий доставки и порядка:
// клиент, подключившийся позже, прошлые события не получит
type Notifier interface {
	Broadcast(event Event)
}

const writeTimeout = 5 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub - реестр активных WebSocket-подключений. Создаётся в точке сборки
// и передаётся явно, не глобальное состояние.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			// API открыт для браузерных клиентов с любых origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS апгрейдит соединение и держит его до закрытия клиентом.
// Входящие сообщения читаются и отбрасываются.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Ошибка апгрейда WebSocket: %v", err)
		return
	}

	id := uuid.New().String()

	h.mu.Lock()
	h.clients[id] = &client{conn: conn}
	h.mu.Unlock()

	log.Printf("WebSocket клиент подключён, всего: %d", h.Count())

	defer func() {
		h.remove(id)
		conn.Close()
		log.Printf("WebSocket клиент отключён, всего: %d", h.Count())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast отправляет событие всем активным клиентам. Клиенты с ошибкой
// записи отключаются; доставка не подтверждается и не повторяется.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mu.RUnlock()

	for id, c := range targets {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := c.conn.WriteJSON(event)
		c.mu.Unlock()

		if err != nil {
			log.Printf("Ошибка отправки события клиенту %s: %v", id, err)
			h.remove(id)
			c.conn.Close()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}

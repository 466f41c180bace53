package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"quiz_web/internal/models"
)

// 廣播房間的名稱
const (
	RoomStudent = "student"
	RoomHost    = "host"
)

var ErrNotAdmitted = errors.New("連線未通過角色驗證")

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn      *websocket.Conn       // WebSocket 連接
	Role      models.ConnectionRole // 連線角色 (student/host)
	StudentID uint                  // 學生 ID，只有學生角色才有
	SendChan  chan *models.Event    // 事件發送通道，用於異步傳送事件
}

// Broadcaster 是其他服務看到的廣播介面
// 讓計分和心跳邏輯依賴抽象，而不是傳輸層的內部結構
type Broadcaster interface {
	PushToAll(event string, data interface{})
	PushToRoom(room string, event string, data interface{})
	CountInRoom(room string) int
}

// WebSocketManager 管理所有的 WebSocket 連接和事件推送
type WebSocketManager struct {
	rooms    map[string]map[*Client]bool // 兩層 map: room -> client -> bool
	roomsMux sync.RWMutex                // 用於保護 rooms map 的讀寫鎖
	clock    clockwork.Clock

	// 主持人送來的 status-change 命令的處理函數，由 NewServices 注入
	onStatusChange func(*models.StatusChange) error
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager(clock clockwork.Clock) *WebSocketManager {
	return &WebSocketManager{
		rooms: make(map[string]map[*Client]bool),
		clock: clock,
	}
}

// OnStatusChange 註冊 status-change 命令的處理函數
func (m *WebSocketManager) OnStatusChange(fn func(*models.StatusChange) error) {
	m.onStatusChange = fn
}

// Admit 根據角色決定連線加入哪個房間
// 主持人無條件接受；學生必須已通過 token 驗證；其他角色一律拒絕
func (m *WebSocketManager) Admit(client *Client) (string, error) {
	switch client.Role {
	case models.RoleHost:
		m.addClient(RoomHost, client)
		return RoomHost, nil
	case models.RoleStudent:
		if client.StudentID == 0 {
			return "", ErrNotAdmitted
		}
		m.addClient(RoomStudent, client)
		return RoomStudent, nil
	default:
		return "", ErrNotAdmitted
	}
}

// HandleClient 處理已被接受的客戶端連線，阻塞直到連線結束
func (m *WebSocketManager) HandleClient(client *Client) {
	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		client.Conn.Close()
		close(client.SendChan)
	}()

	// 啟動讀寫處理
	go m.writePump(client)
	m.readPump(client)
}

// readPump 持續監聽並處理從客戶端接收的消息
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		// 解析接收到的消息
		var msg models.ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		m.dispatch(client, &msg)
	}
}

// dispatch 處理單一客戶端消息
// 回合控制命令只接受來自主持人的連線，其他消息一律丟棄
func (m *WebSocketManager) dispatch(client *Client, msg *models.ClientMessage) {
	if msg.Event != models.EventStatusChange || client.Role != models.RoleHost {
		log.Printf("ignoring event %q from role %q", msg.Event, client.Role)
		return
	}
	if m.onStatusChange == nil {
		return
	}

	var change models.StatusChange
	if err := json.Unmarshal(msg.Data, &change); err != nil {
		log.Printf("status-change parse error: %v", err)
		m.PushToClient(client, models.EventAck, models.Ack{Success: false})
		return
	}

	err := m.onStatusChange(&change)
	if err != nil {
		log.Printf("status-change rejected: %v", err)
	}
	m.PushToClient(client, models.EventAck, models.Ack{Success: err == nil})
}

// writePump 處理向客戶端發送事件的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PushToAll 向所有房間的所有客戶端廣播事件
func (m *WebSocketManager) PushToAll(event string, data interface{}) {
	m.roomsMux.RLock()
	var clients []*Client
	for _, room := range m.rooms {
		for client := range room {
			clients = append(clients, client)
		}
	}
	m.roomsMux.RUnlock()

	msg := &models.Event{Event: event, Data: data}
	for _, client := range clients {
		m.send(client, msg)
	}
}

// PushToRoom 向指定房間的所有客戶端廣播事件
func (m *WebSocketManager) PushToRoom(room string, event string, data interface{}) {
	m.roomsMux.RLock()
	var clients []*Client
	for client := range m.rooms[room] {
		clients = append(clients, client)
	}
	m.roomsMux.RUnlock()

	msg := &models.Event{Event: event, Data: data}
	for _, client := range clients {
		m.send(client, msg)
	}
}

// PushToClient 向單一客戶端發送事件
func (m *WebSocketManager) PushToClient(client *Client, event string, data interface{}) {
	m.send(client, &models.Event{Event: event, Data: data})
}

func (m *WebSocketManager) send(client *Client, msg *models.Event) {
	select {
	case client.SendChan <- msg:
		// 事件成功加入發送隊列
	default:
		// 客戶端事件隊列已滿，關閉連接
		m.removeClient(client)
		client.Conn.Close()
	}
}

// CountInRoom 獲取指定房間的在線客戶端數量
func (m *WebSocketManager) CountInRoom(room string) int {
	m.roomsMux.RLock()
	defer m.roomsMux.RUnlock()

	return len(m.rooms[room])
}

// StartHostInfoNotifier 定期向主持人房間推送在線學生人數
func (m *WebSocketManager) StartHostInfoNotifier(interval time.Duration) {
	go func() {
		ticker := m.clock.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.Chan() {
			m.PushToRoom(RoomHost, models.EventHostInfo, models.HostInfo{
				NumStudents: m.CountInRoom(RoomStudent),
			})
		}
	}()
}

// addClient 安全地添加新的客戶端連接
func (m *WebSocketManager) addClient(room string, client *Client) {
	m.roomsMux.Lock()
	defer m.roomsMux.Unlock()

	if m.rooms[room] == nil {
		m.rooms[room] = make(map[*Client]bool)
	}
	m.rooms[room][client] = true
}

// removeClient 安全地移除客戶端連接
func (m *WebSocketManager) removeClient(client *Client) {
	m.roomsMux.Lock()
	defer m.roomsMux.Unlock()

	for name, room := range m.rooms {
		if _, ok := room[client]; ok {
			delete(room, client)
			// 如果房間空了，刪除房間
			if len(room) == 0 {
				delete(m.rooms, name)
			}
		}
	}
}

package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"quiz_web/internal/models"
	"quiz_web/internal/service"
	"quiz_web/internal/utils"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	wsManager   *service.WebSocketManager
	quizService *service.QuizService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, quizService *service.QuizService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		quizService: quizService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
//
// 握手帶 role 參數宣告角色，學生另外帶 token 參數。
// 角色無法識別或學生 token 驗證失敗時直接拒絕，不做部分接受。
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	role := models.ParseConnectionRole(c.Query("role"))
	if role == models.RoleUnknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的角色"})
		return
	}

	// 學生必須先通過 token 驗證才能升級連線
	var studentID uint
	if role == models.RoleStudent {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少token"})
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "無效的token"})
			return
		}
		studentID = claims.StudentID
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 創建客戶端並加入對應房間
	client := &service.Client{
		Conn:      conn,
		Role:      role,
		StudentID: studentID,
		SendChan:  make(chan *models.Event, 256), // 設置緩衝大小為 256 的事件通道
	}

	if _, err := h.wsManager.Admit(client); err != nil {
		conn.Close()
		return
	}

	// 把目前的測驗狀態推送給剛連上的客戶端（只有這個連線收到）
	if err := h.quizService.NotifyStatus(h.wsManager, client); err != nil {
		log.Printf("failed to push quiz status: %v", err)
	}

	// 處理客戶端連接，阻塞直到連線結束
	h.wsManager.HandleClient(client)
}

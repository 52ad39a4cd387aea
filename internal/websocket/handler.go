package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域校验交给 CORS 中间件
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationHandler 通知推送 WebSocket 入口
// 必须挂在认证中间件之后,按上下文中的 user_id 归属连接
func NotificationHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		id, ok := userID.(uint)
		if !exists || !ok || id == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "unauthorized",
			})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := NewClient(uuid.NewString(), id, hub, conn)
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}

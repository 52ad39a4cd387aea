package api

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware 安全头中间件
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 防止 MIME 类型嗅探
		c.Header("X-Content-Type-Options", "nosniff")

		// 防止点击劫持
		c.Header("X-Frame-Options", "DENY")

		// 兼容旧浏览器的 XSS 保护
		c.Header("X-XSS-Protection", "1; mode=block")

		// 强制 HTTPS（HSTS）
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		// 控制 Referer 头的发送
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

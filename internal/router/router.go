package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"AttendBot/internal/handler"
	"AttendBot/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())

	// WhatsApp 回调：GET 为订阅握手，POST 为入站消息（带签名校验）
	h.GET("/webhook", handler.VerifyWebhook)
	h.POST("/webhook", middleware.SignatureMiddleware(), handler.ReceiveWebhook)

	v1 := h.Group("/v1")
	v1.Use(middleware.CORSMiddleware())

	// 通知日志与传输层状态
	notifications := v1.Group("/notifications")
	{
		notifications.GET("", handler.ListNotifications)
		notifications.DELETE("", handler.ClearNotifications)
	}
	v1.GET("/whatsapp/status", handler.GetWhatsAppStatus)

	// 请假审批
	leaves := v1.Group("/leaves")
	{
		leaves.POST("/:leave_id/decision", handler.DecideLeave)
	}

	// 调度器诊断
	scheduler := v1.Group("/scheduler")
	{
		scheduler.GET("/triggers", handler.ListTriggers)
		scheduler.POST("/triggers/:name/run", handler.RunTrigger)
	}

	// 行政通知
	notices := v1.Group("/notices")
	{
		notices.POST("/broadcast", handler.BroadcastNotice)
	}
}

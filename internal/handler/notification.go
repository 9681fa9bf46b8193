package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendBot/pkg/response"
	"AttendBot/pkg/whatsapp"
)

// ListNotifications 返回通知日志，最新在前
func ListNotifications(ctx context.Context, c *app.RequestContext) {
	entries := whatsapp.Notifications().Entries()
	response.SuccessWithMeta(ctx, c, entries, map[string]interface{}{
		"count": len(entries),
	})
}

// ClearNotifications 清空通知日志
func ClearNotifications(ctx context.Context, c *app.RequestContext) {
	whatsapp.Notifications().Clear()
	response.NoContent(ctx, c)
}

// GetWhatsAppStatus 返回传输层配置状态，用于诊断 demo 模式
func GetWhatsAppStatus(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, whatsapp.GetConfigurationStatus())
}

package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"AttendBot/config"
	"AttendBot/pkg/errors"
	"AttendBot/pkg/logger"
	"AttendBot/pkg/response"
)

// RecoverMiddleware 捕获 handler panic，记录堆栈并返回统一错误响应。
// 生产环境不向外暴露 panic 细节。
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				logger.Logger.Error("[PANIC RECOVERED]",
					zap.String("panic", fmt.Sprintf("%v", err)),
					zap.String("path", string(c.Path())),
					zap.String("method", string(c.Method())),
					zap.String("client_ip", c.ClientIP()),
					zap.ByteString("stack", debug.Stack()),
				)

				message := "Internal server error"
				if !config.Cfg.IsProduction() {
					message = fmt.Sprintf("Internal error: %v", err)
				}
				response.Error(ctx, c, errors.Definition{
					Code:    "INTERNAL_SERVER_ERROR",
					Message: message,
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendBot/pkg/response"
)

// ListTriggers 返回已注册的触发器名称
func ListTriggers(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, deps.Scheduler.TriggerNames())
}

// RunTrigger 手动同步执行一个触发器，用于调试和补发
func RunTrigger(ctx context.Context, c *app.RequestContext) {
	name := c.Param("name")

	if err := deps.Scheduler.RunTrigger(ctx, name); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"trigger": name,
		"status":  "completed",
	})
}

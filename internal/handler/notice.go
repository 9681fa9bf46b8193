package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"AttendBot/internal/repository"
	"AttendBot/internal/service"
	apperrors "AttendBot/pkg/errors"
	"AttendBot/pkg/response"
)

// NoticeRequest 行政通知请求体。type 决定需要哪些字段：
// maintenance 需要 start/end，holiday 需要 holiday_name/date，
// birthday/welcome 需要 employee_id，anniversary 需要 employee_id/years。
type NoticeRequest struct {
	Type        string `json:"type"`
	EmployeeID  int64  `json:"employee_id"`
	HolidayName string `json:"holiday_name"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Years       int    `json:"years"`
}

// BroadcastNotice 按模板发送行政通知，全员广播或定向单发
func BroadcastNotice(ctx context.Context, c *app.RequestContext) {
	var req NoticeRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	switch req.Type {
	case "maintenance":
		if req.Start == "" || req.End == "" {
			response.Error(ctx, c, apperrors.InvalidRequest)
			return
		}
		broadcast(ctx, c, service.MaintenanceText(req.Start, req.End))

	case "holiday":
		date, err := time.Parse("2006-01-02", req.Date)
		if req.HolidayName == "" || err != nil {
			response.Error(ctx, c, apperrors.InvalidRequest)
			return
		}
		broadcast(ctx, c, service.HolidayText(req.HolidayName, date))

	case "birthday":
		sendTo(ctx, c, req.EmployeeID, func(name string) string {
			return service.BirthdayText(name)
		})

	case "anniversary":
		if req.Years < 1 {
			response.Error(ctx, c, apperrors.InvalidRequest)
			return
		}
		sendTo(ctx, c, req.EmployeeID, func(name string) string {
			return service.AnniversaryText(name, req.Years)
		})

	case "welcome":
		sendTo(ctx, c, req.EmployeeID, func(name string) string {
			return service.WelcomeText(name)
		})

	default:
		response.Error(ctx, c, apperrors.NoticeTypeInvalid)
	}
}

func broadcast(ctx context.Context, c *app.RequestContext, text string) {
	if err := deps.Jobs.Notice(ctx, text); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"status": "sent"})
}

func sendTo(ctx context.Context, c *app.RequestContext, employeeID int64, compose func(name string) string) {
	emp, err := deps.Directory.FindByID(ctx, employeeID)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Error(ctx, c, apperrors.EmployeeNotFound)
			return
		}
		response.Error(ctx, c, err)
		return
	}

	if err := deps.Jobs.NoticeTo(ctx, emp, compose(emp.FirstName)); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{
		"status":      "sent",
		"employee_id": employeeID,
	})
}

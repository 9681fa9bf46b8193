package handler

import (
	"AttendBot/internal/repository"
	"AttendBot/internal/schedule"
	"AttendBot/internal/service"
)

// Deps 接口层依赖，由 server 启动时注入
type Deps struct {
	Bot       *service.Bot
	Scheduler *schedule.Scheduler
	Jobs      *schedule.Jobs
	Directory repository.EmployeeDirectory
	Leaves    repository.LeaveStore
}

var deps Deps

func Init(d Deps) {
	deps = d
}

package service

import (
	"os"
	"testing"

	"AttendBot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

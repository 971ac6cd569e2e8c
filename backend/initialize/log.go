package initialize

import (
	"timeblessed/backend/global"
	"timeblessed/logger"
)

func init() {
	global.Logger = logger.L
}

// initLogger reopens the shared logger with the configured sink and level.
func initLogger(path, level string) error {
	err := logger.Init(path, level)
	global.Logger = logger.L
	return err
}

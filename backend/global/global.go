package global

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"timeblessed/config"
	"timeblessed/events"
)

var (
	Config *config.Config
	Logger zerolog.Logger
	Mdb    *gorm.DB
	Bus    *events.Bus
)

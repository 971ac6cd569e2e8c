package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"timeblessed/backend/app/controllers"
	"timeblessed/backend/app/middleware"
)

type Controllers struct {
	HTTP         *controllers.HTTPController
	Auth         *controllers.AuthController
	Restrictions *controllers.RestrictionController
	Favorites    *controllers.FavoriteController
	Preferences  *controllers.PreferenceController
}

func NewRouter(ctrl Controllers, mw *middleware.Auth, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(log))

	// public
	r.GET("/ping", ctrl.HTTP.Ping)
	r.POST("/login", ctrl.Auth.Login)

	api := r.Group("/api")
	api.Use(mw.RequireAuth())
	{
		api.PUT("/password", ctrl.Auth.ChangePassword)

		api.GET("/restrictions", ctrl.Restrictions.List)
		api.DELETE("/restrictions", ctrl.Restrictions.Clear)
		api.GET("/restrictions/:package", ctrl.Restrictions.Get)
		api.PUT("/restrictions/:package", ctrl.Restrictions.Put)
		api.DELETE("/restrictions/:package", ctrl.Restrictions.Delete)

		api.GET("/favorites", ctrl.Favorites.List)
		api.PUT("/favorites/:package", ctrl.Favorites.Put)
		api.DELETE("/favorites/:package", ctrl.Favorites.Delete)

		api.GET("/preferences/notifications", ctrl.Preferences.Get)
		api.PUT("/preferences/notifications", ctrl.Preferences.Put)
	}
	return r
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeblessed/backend/app/dto"
	"timeblessed/service"
)

type FavoriteController struct{ Launcher *service.Launcher }

func NewFavoriteController(l *service.Launcher) *FavoriteController {
	return &FavoriteController{Launcher: l}
}

func (f *FavoriteController) List(c *gin.Context) {
	favs, err := f.Launcher.Favorites()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.FavoriteResponse, 0, len(favs))
	for _, fav := range favs {
		out = append(out, dto.NewFavoriteResponse(fav))
	}
	c.JSON(http.StatusOK, out)
}

func (f *FavoriteController) Put(c *gin.Context) {
	var req dto.FavoriteRequest
	// An empty body is fine; the name is optional.
	_ = c.ShouldBindJSON(&req)
	if err := f.Launcher.AddFavorite(c.Param("package"), req.AppName); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (f *FavoriteController) Delete(c *gin.Context) {
	if err := f.Launcher.RemoveFavorite(c.Param("package")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

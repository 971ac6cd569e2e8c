package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeblessed/service"
)

type PreferenceController struct{ Launcher *service.Launcher }

func NewPreferenceController(l *service.Launcher) *PreferenceController {
	return &PreferenceController{Launcher: l}
}

func (p *PreferenceController) Get(c *gin.Context) {
	prefs, err := p.Launcher.Preferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// Put replaces the preferences; omitted fields keep their current value.
func (p *PreferenceController) Put(c *gin.Context) {
	prefs, err := p.Launcher.Preferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Launcher.SavePreferences(prefs); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

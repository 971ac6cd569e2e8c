package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HTTPController struct{}

func NewHTTPController() *HTTPController { return &HTTPController{} }

func (h *HTTPController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong", "time": time.Now().Unix()})
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeblessed/backend/app/dto"
	"timeblessed/service"
)

type RestrictionController struct{ Launcher *service.Launcher }

func NewRestrictionController(l *service.Launcher) *RestrictionController {
	return &RestrictionController{Launcher: l}
}

func (r *RestrictionController) List(c *gin.Context) {
	rows, err := r.Launcher.Restrictions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	now := r.Launcher.Now()
	out := make([]dto.RestrictionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.NewRestrictionResponse(row, now))
	}
	c.JSON(http.StatusOK, out)
}

// Get reports the package status; a package without a restriction is not an error.
func (r *RestrictionController) Get(c *gin.Context) {
	st, err := r.Launcher.Status(c.Param("package"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (r *RestrictionController) Put(c *gin.Context) {
	var req dto.RestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg := c.Param("package")
	row, err := r.Launcher.SetRestriction(c.Request.Context(), pkg, req.AppName, req.Window())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if req.Label != nil {
		if err := r.Launcher.SetLabel(c.Request.Context(), pkg, *req.Label); err != nil {
			writeServiceError(c, err)
			return
		}
		if row, err = r.Launcher.Restriction(pkg); err != nil {
			writeServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, dto.NewRestrictionResponse(*row, r.Launcher.Now()))
}

func (r *RestrictionController) Delete(c *gin.Context) {
	if err := r.Launcher.RemoveRestriction(c.Request.Context(), c.Param("package")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *RestrictionController) Clear(c *gin.Context) {
	if err := r.Launcher.ClearRestrictions(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "visibility window must last between 1 and 2 hours"})
	case errors.Is(err, service.ErrInvalidHour):
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be between 0 and 23"})
	case errors.Is(err, service.ErrEmptyPackage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package http

import (
	"net/http"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type SportController struct {
	sports service.SportInteractor
}

func NewSportController(sports service.SportInteractor) *SportController {
	return &SportController{sports: sports}
}

func (c *SportController) Create(ctx *gin.Context) {
	type request struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sport, err := c.sports.Create(ctx.Request.Context(), req.Name, req.Type)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"sport": sport})
}

func (c *SportController) Get(ctx *gin.Context) {
	sportID, err := parseID(ctx.Param("sportID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid sport id"})
		return
	}

	sport, err := c.sports.Get(ctx.Request.Context(), sportID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"sport": sport})
}

func (c *SportController) List(ctx *gin.Context) {
	sports, err := c.sports.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"sports": sports})
}

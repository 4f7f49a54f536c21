package http

import (
	"net/http"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/api/http/converter"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type PlaydateController struct {
	playdates  service.PlaydateInteractor
	membership service.MembershipInteractor
}

func NewPlaydateController(playdates service.PlaydateInteractor, membership service.MembershipInteractor) *PlaydateController {
	return &PlaydateController{playdates: playdates, membership: membership}
}

func (c *PlaydateController) Create(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	type request struct {
		Title           string `json:"title" binding:"required"`
		SportID         uint   `json:"sport_id" binding:"required"`
		Address         string `json:"address" binding:"required"`
		Date            string `json:"date" binding:"required"`
		MaxParticipants *int   `json:"max_participants"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	playdate, err := c.playdates.Create(ctx.Request.Context(), service.CreatePlaydateInput{
		Title:           req.Title,
		SportID:         req.SportID,
		CreatorID:       identity.UserID,
		Address:         req.Address,
		Date:            req.Date,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"playdate": converter.PlaydateToApi(playdate)})
}

func (c *PlaydateController) List(ctx *gin.Context) {
	playdates, err := c.playdates.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"playdates": converter.PlaydatesToApi(playdates)})
}

func (c *PlaydateController) Get(ctx *gin.Context) {
	playdateID, err := parseID(ctx.Param("playdateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
		return
	}

	playdate, err := c.playdates.Get(ctx.Request.Context(), playdateID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"playdate": converter.PlaydateToApi(playdate)})
}

func (c *PlaydateController) Delete(ctx *gin.Context) {
	playdateID, err := parseID(ctx.Param("playdateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
		return
	}

	if err := c.playdates.Delete(ctx.Request.Context(), playdateID); err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "playdate deleted"})
}

func (c *PlaydateController) Join(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	playdateID, err := parseID(ctx.Param("playdateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
		return
	}

	roster, err := c.membership.Join(ctx.Request.Context(), identity.UserID, playdateID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"roster": roster})
}

func (c *PlaydateController) Leave(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	playdateID, err := parseID(ctx.Param("playdateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
		return
	}

	roster, err := c.membership.Leave(ctx.Request.Context(), identity.UserID, playdateID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"roster": roster})
}

func (c *PlaydateController) Participants(ctx *gin.Context) {
	playdateID, err := parseID(ctx.Param("playdateID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
		return
	}

	roster, err := c.membership.List(ctx.Request.Context(), playdateID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"roster": roster})
}

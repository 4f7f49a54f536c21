package http

import (
	"net/http"
	"strconv"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/api/http/converter"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users service.UserInteractor
}

func NewUserController(users service.UserInteractor) *UserController {
	return &UserController{users: users}
}

func (c *UserController) Register(ctx *gin.Context) {
	type request struct {
		Username  string `json:"username" binding:"required"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, token, err := c.users.Register(ctx.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": converter.UserToApi(user), "token": token})
}

func (c *UserController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := c.users.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": converter.UserToApi(user), "token": token})
}

func (c *UserController) Me(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := c.users.Get(ctx.Request.Context(), identity.UserID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": converter.UserToApi(user)})
}

func (c *UserController) List(ctx *gin.Context) {
	users, err := c.users.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": converter.UsersToApi(users)})
}

func (c *UserController) Get(ctx *gin.Context) {
	userID, err := parseID(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := c.users.Get(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": converter.UserToApi(user)})
}

func (c *UserController) Delete(ctx *gin.Context) {
	userID, err := parseID(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := c.users.Delete(ctx.Request.Context(), userID); err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (c *UserController) AddInterest(ctx *gin.Context) {
	userID, err := parseID(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	type request struct {
		SportID uint `json:"sport_id" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	interest, err := c.users.AddInterest(ctx.Request.Context(), userID, req.SportID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"interest": interest})
}

func (c *UserController) ListInterests(ctx *gin.Context) {
	userID, err := parseID(ctx.Param("userID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	interests, err := c.users.ListInterests(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"interests": interests})
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

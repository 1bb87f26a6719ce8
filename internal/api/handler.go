// Package api exposes the HTTP surface: the websocket upgrade endpoint the
// game client connects to and a small set of read-only JSON endpoints.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/y122132/pet-trainer-sub000/internal/constants"
	"github.com/y122132/pet-trainer-sub000/internal/logging"
	"github.com/y122132/pet-trainer-sub000/internal/storage"
	"github.com/y122132/pet-trainer-sub000/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The game client is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub     *ws.Hub
	handler ws.CommandHandler
	repo    storage.Repository
}

func NewHandler(hub *ws.Hub, commandHandler ws.CommandHandler, repo storage.Repository) *Handler {
	return &Handler{hub: hub, handler: commandHandler, repo: repo}
}

// ServeWebsocket upgrades the connection and services it until it drops.
// The user id comes from the `user` query parameter.
func (h *Handler) ServeWebsocket(c *gin.Context) {
	userID := c.Query("user")
	if userID == "" || userID == constants.BotUserID {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserParamRequired})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldUserID: userID})
		return
	}
	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)
	logging.Info("client connected", logging.Fields{constants.LogFieldUserID: userID, constants.LogFieldAddr: c.Request.RemoteAddr})
	client.Run(c.Request.Context(), h.handler)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListLeaderboard returns the top trainers by wins (desc), top 10 by
// default.
func (h *Handler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	trainers, err := h.repo.TopTrainers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLeaderboard})
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetPlayerStats returns one trainer's win/loss record.
func (h *Handler) GetPlayerStats(c *gin.Context) {
	userID := c.Query("user")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUserParamRequired})
		return
	}
	trainer, err := h.repo.StatsByUser(userID)
	if err != nil {
		if errors.Is(err, storage.ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrCharacterMissing})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, trainer)
}

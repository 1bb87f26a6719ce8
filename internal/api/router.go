package api

import (
	"github.com/gin-gonic/gin"

	"github.com/y122132/pet-trainer-sub000/internal/constants"
)

// NewRouter wires the HTTP routes.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.GET(constants.RouteWebsocket, handler.ServeWebsocket)
	router.GET(constants.RouteHealth, handler.Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
	}

	return router
}

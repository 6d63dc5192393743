package handlers

import (
	"carrental/internal/services"
	"carrental/internal/utils"
	"carrental/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statistics *services.Statistics
	websocket  *websocket.Handler
}

func NewStatisticsHandler(statistics *services.Statistics, ws *websocket.Handler) *StatisticsHandler {
	return &StatisticsHandler{
		statistics: statistics,
		websocket:  ws,
	}
}

// GetStatistics returns the last published counter of every collection
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	utils.SuccessResponse(c, "Statistics retrieved", gin.H{
		"counts":    h.statistics.Latest(),
		"listeners": h.websocket.GetHub().RoomSize(websocket.StatisticsRoom),
	})
}

// Stream upgrades the request to the live statistics websocket
func (h *StatisticsHandler) Stream(c *gin.Context) {
	h.websocket.HandleWebSocket(c)
}

package handler

import (
	"context"
	"log/slog"
	"time"

	"notesmanager/utils"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status     string  `json:"status"`
	Storage    string  `json:"storage"`
	CPUPercent float64 `json:"cpuPercent"`
}

const healthCPUSample = 100 * time.Millisecond

func HealthHandler(c *gin.Context, store Pinger, driver string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Storage: driver}
	if err := store.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "health check: storage unreachable", slog.Any("error", err))
		resp.Status = "unavailable"
		utils.ServiceUnavailable(c, "Storage unavailable", resp)
		return
	}

	resp.CPUPercent = utils.CPUUsage(ctx, healthCPUSample)
	utils.Success(c, "", resp)
}

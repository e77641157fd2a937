package http

import (
	"net/http"
	"time"

	"flexstock/internal/inventory"

	"github.com/gin-gonic/gin"
)

const (
	apiName    = "FlexStock Inventory Management API"
	apiVersion = "1.0.0"
)

type endpointInfo struct {
	URL         string   `json:"url"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type apiInfoResponse struct {
	Name        string                  `json:"name"`
	Version     string                  `json:"version"`
	Description string                  `json:"description"`
	Endpoints   map[string]endpointInfo `json:"endpoints"`
}

type databaseStatus struct {
	Connection bool             `json:"connection"`
	Message    string           `json:"message"`
	Stats      *inventory.Stats `json:"stats,omitempty"`
}

type statusResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Database  databaseStatus `json:"database"`
}

// Info godoc
// @Summary      API information
// @Tags         meta
// @Produce      json
// @Success      200  {object}  apiInfoResponse
// @Router       / [get]
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, apiInfoResponse{
		Name:        apiName,
		Version:     apiVersion,
		Description: "RESTful API for FlexStock inventory management",
		Endpoints: map[string]endpointInfo{
			"products": {
				URL:         "/products",
				Methods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
				Description: "Manage inventory products",
			},
			"updates": {
				URL:         "/updates",
				Methods:     []string{http.MethodGet, http.MethodPost},
				Description: "Inventory activity log",
			},
		},
	})
}

// Status godoc
// @Summary      Database connectivity and row counts
// @Tags         meta
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      503  {object}  statusResponse
// @Router       /status [get]
func (h *Handler) Status(c *gin.Context) {
	resp := statusResponse{Timestamp: time.Now().UTC()}

	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		resp.Database = databaseStatus{Connection: false, Message: "Failed to connect to database"}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.Database = databaseStatus{
		Connection: true,
		Message:    "Database connected successfully",
		Stats:      &stats,
	}
	c.JSON(http.StatusOK, resp)
}

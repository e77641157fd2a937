package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"flexstock/internal/inventory"

	"github.com/gin-gonic/gin"
)

type listUpdatesResponse struct {
	Success bool                      `json:"success" example:"true"`
	Data    []inventory.EnrichedEvent `json:"data"`
	Count   int                       `json:"count" example:"2"`
}

type createUpdateResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Update record created successfully"`
	ID      int64  `json:"id" example:"17"`
}

// ListUpdates godoc
// @Summary      List inventory updates
// @Description  Oldest first. current_product_name is the product's name now, null if it was deleted.
// @Tags         updates
// @Produce      json
// @Success      200  {object}  listUpdatesResponse
// @Failure      500  {object}  errorResponse
// @Router       /updates [get]
func (h *Handler) ListUpdates(c *gin.Context) {
	events, err := h.updates.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to read update records")
		return
	}

	c.JSON(http.StatusOK, listUpdatesResponse{Success: true, Data: events, Count: len(events)})
}

// CreateUpdate godoc
// @Summary      Record an inventory update
// @Tags         updates
// @Accept       json
// @Produce      json
// @Param        body  body      inventory.Update      true  "Update record; only type is required"
// @Success      201   {object}  createUpdateResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /updates [post]
func (h *Handler) CreateUpdate(c *gin.Context) {
	// Absent fields must stay distinguishable from zero, so no struct binding.
	var input map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.updates.Create(c.Request.Context(), input)
	if err != nil {
		var verr *inventory.ValidationError
		if errors.As(err, &verr) {
			fail(c, http.StatusBadRequest, verr.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to create update record")
		return
	}

	c.JSON(http.StatusCreated, createUpdateResponse{
		Success: true,
		Message: "Update record created successfully",
		ID:      id,
	})
}

package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"flexstock/internal/inventory"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const userHeader = "X-User"

type ProductService interface {
	CreateProduct(ctx context.Context, input inventory.ProductInput, user string) (inventory.Product, error)
	GetProduct(ctx context.Context, id int64) (inventory.Product, error)
	ListProducts(ctx context.Context) ([]inventory.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch inventory.ProductPatch, user string) (inventory.Product, error)
	DeleteProduct(ctx context.Context, id int64, user string) error
}

type UpdateService interface {
	Create(ctx context.Context, input map[string]any) (int64, error)
	List(ctx context.Context) ([]inventory.EnrichedEvent, error)
}

type StatsReader interface {
	Stats(ctx context.Context) (inventory.Stats, error)
}

type Handler struct {
	products ProductService
	updates  UpdateService
	stats    StatsReader
}

func NewHandler(products ProductService, updates UpdateService, stats StatsReader) *Handler {
	return &Handler{
		products: products,
		updates:  updates,
		stats:    stats,
	}
}

type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"product not found"`
}

type messageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Product deleted successfully"`
}

type productResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    inventory.Product `json:"data"`
}

type listProductsResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    []inventory.Product `json:"data"`
	Count   int                 `json:"count" example:"3"`
}

type createProductRequest struct {
	Name         string          `json:"name" binding:"required" example:"Wireless Headphones"`
	Category     string          `json:"category" example:"Electronics"`
	Price        decimal.Decimal `json:"price" swaggertype:"number" example:"89.99"`
	Stock        int             `json:"stock" example:"45"`
	ReorderLevel int             `json:"reorder_level" example:"10"`
}

type updateProductRequest struct {
	Name         *string          `json:"name" example:"Wireless Headphones Pro"`
	Category     *string          `json:"category" example:"Audio"`
	Price        *decimal.Decimal `json:"price" swaggertype:"number" example:"99.99"`
	Stock        *int             `json:"stock" example:"40"`
	ReorderLevel *int             `json:"reorder_level" example:"8"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Success: false, Message: message})
}

func actingUser(c *gin.Context) string {
	if user := strings.TrimSpace(c.GetHeader(userHeader)); user != "" {
		return user
	}
	return inventory.DefaultUser
}

func productError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		fail(c, http.StatusNotFound, inventory.ErrNotFound.Error())
	case errors.Is(err, inventory.ErrInvalidProduct):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		fail(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

// CreateProduct godoc
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-User  header    string                false  "Acting user"
// @Param        body    body      createProductRequest  true   "Product data"
// @Success      201     {object}  productResponse
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), inventory.ProductInput{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}, actingUser(c))
	if err != nil {
		productError(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, productResponse{Success: true, Data: product})
}

// GetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		productError(c, err, "failed to get product")
		return
	}

	c.JSON(http.StatusOK, productResponse{Success: true, Data: product})
}

// ListProducts godoc
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {object}  listProductsResponse
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to get products")
		return
	}

	c.JSON(http.StatusOK, listProductsResponse{Success: true, Data: items, Count: len(items)})
}

// UpdateProduct godoc
// @Summary      Update product attributes
// @Description  Records one inventory update per changed attribute.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        X-User  header    string                false  "Acting user"
// @Param        id      path      int                   true   "Product ID"
// @Param        body    body      updateProductRequest  true   "Attributes to change"
// @Success      200     {object}  productResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, inventory.ProductPatch{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
	}, actingUser(c))
	if err != nil {
		productError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, productResponse{Success: true, Data: product})
}

// DeleteProduct godoc
// @Summary      Delete a product by ID
// @Tags         products
// @Produce      json
// @Param        X-User  header    string  false  "Acting user"
// @Param        id      path      int     true   "Product ID"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id, actingUser(c)); err != nil {
		productError(c, err, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Product deleted successfully"})
}

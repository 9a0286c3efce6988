package handler

import (
	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/request"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// StockHandler handles the stock movement log
type StockHandler struct {
	store *service.StoreService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(store *service.StoreService) *StockHandler {
	return &StockHandler{store: store}
}

// List pages through movements, most recent first
func (h *StockHandler) List(c *gin.Context) {
	var filter request.MovementFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := h.store.ListMovements(service.MovementFilter{
		Type:      enum.MovementType(filter.Type),
		ProductID: filter.ProductID,
	}, pageParams(filter.Page, filter.PerPage))

	response.SuccessWithPagination(c, 200, "Movements retrieved successfully", result)
}

// Create records a single movement
func (h *StockHandler) Create(c *gin.Context) {
	var req request.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	mv, err := h.store.AddStockMovement(c.Request.Context(), service.MovementInput{
		Type:      enum.MovementType(req.Type),
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		UserID:    req.UserID,
		Origin:    req.Origin,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Movement recorded successfully", mv)
}

// CreateBatch registers a bulk stock entry
func (h *StockHandler) CreateBatch(c *gin.Context) {
	var req request.StockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]service.StockEntryLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, service.StockEntryLine{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	movements, err := h.store.AddStockEntries(c.Request.Context(), lines, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock entry registered successfully", movements)
}

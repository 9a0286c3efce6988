package handler

import (
	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/request"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles counter sales
type SaleHandler struct {
	store *service.StoreService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(store *service.StoreService) *SaleHandler {
	return &SaleHandler{store: store}
}

// List pages through sales, most recent first. ?date=YYYY-MM-DD keeps one business day.
func (h *SaleHandler) List(c *gin.Context) {
	result := h.store.ListSales(c.Query("date"), queryPageParams(c))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.store.Sale(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Create records a cash sale for the session user
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]service.SaleLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, service.SaleLine{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	sale, err := h.store.CreateSale(c.Request.Context(), lines)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

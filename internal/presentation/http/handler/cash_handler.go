package handler

import (
	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/request"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CashHandler handles the daily cash total and cash closes
type CashHandler struct {
	store *service.StoreService
}

// NewCashHandler creates a new cash handler
func NewCashHandler(store *service.StoreService) *CashHandler {
	return &CashHandler{store: store}
}

// Today returns today's cash total and, if already done, today's close
func (h *CashHandler) Today(c *gin.Context) {
	response.OK(c, "Daily cash total retrieved", h.store.TodayCash())
}

// Close records today's cash close
func (h *CashHandler) Close(c *gin.Context) {
	var req request.CloseCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cc, err := h.store.CloseCash(c.Request.Context(), entity.MoneyFromDecimal(req.ReportedAmount), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Cash closed with a difference"
	if cc.Balanced() {
		message = "Cash closed, exact match"
	}
	response.Created(c, message, cc)
}

// List pages through past closes, most recent first
func (h *CashHandler) List(c *gin.Context) {
	result := h.store.ListCashCloses(queryPageParams(c))
	response.SuccessWithPagination(c, 200, "Cash closes retrieved successfully", result)
}

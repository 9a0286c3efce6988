package handler

import (
	"net/http"

	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintReceipt prints the receipt of a sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		// the receipt was built, only the printer failed
		if receipt != nil {
			response.ErrorWithData(c, http.StatusBadGateway, "Receipt generated but printing failed: "+err.Error(), gin.H{
				"receipt": receipt,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboards, the report aggregates and the xlsx export
type ReportHandler struct {
	store   *service.StoreService
	reports *service.ReportService
	export  *service.ExportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(store *service.StoreService, reports *service.ReportService, export *service.ExportService) *ReportHandler {
	return &ReportHandler{store: store, reports: reports, export: export}
}

// Dashboard returns the landing view for the session user's role
func (h *ReportHandler) Dashboard(c *gin.Context) {
	user := GetUser(c)
	if user == nil {
		response.Unauthorized(c, "No active session")
		return
	}

	dashboard, err := h.reports.Dashboard(user, service.SalesRange(c.Query("range")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// Summary returns the sales summary for ?range=day|week|month|year
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reports.SalesSummary(service.SalesRange(c.DefaultQuery("range", string(service.RangeDay))))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary retrieved successfully", summary)
}

func (h *ReportHandler) Performance(c *gin.Context) {
	response.OK(c, "Product performance retrieved successfully", h.reports.ProductPerformance())
}

func (h *ReportHandler) TopSellers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultTopSellers)))
	response.OK(c, "Top sellers retrieved successfully", h.reports.TopSellers(limit))
}

func (h *ReportHandler) ByCategory(c *gin.Context) {
	response.OK(c, "Sales by category retrieved successfully", h.reports.SalesByCategory())
}

func (h *ReportHandler) ByBrand(c *gin.Context) {
	response.OK(c, "Sales by brand retrieved successfully", h.reports.SalesByBrand())
}

// Export streams the report workbook as an attachment
func (h *ReportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.export.WriteReportWorkbook(&buf); err != nil {
		response.InternalServerError(c, "Failed to build report workbook")
		return
	}

	filename := fmt.Sprintf("report-%s.xlsx", h.store.Today())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

package handler

import (
	"github.com/cuatrovientos/retail-api/internal/application/service"
	"github.com/cuatrovientos/retail-api/internal/domain/enum"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/request"
	"github.com/cuatrovientos/retail-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	store *service.StoreService
}

// NewProductHandler creates a new product handler
func NewProductHandler(store *service.StoreService) *ProductHandler {
	return &ProductHandler{store: store}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := h.store.ListProducts(service.ProductFilter{
		Search:     filter.Search,
		Category:   enum.ProductCategory(filter.Category),
		BrandID:    filter.BrandID,
		ActiveOnly: filter.ActiveOnly,
	}, pageParams(filter.Page, filter.PerPage))

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.store.Product(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.store.AddProduct(c.Request.Context(), req.ToEntity(""))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update replaces a product as a whole
func (h *ProductHandler) Update(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.store.UpdateProduct(c.Request.Context(), req.ToEntity(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

package handler

import (
	"strconv"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/cuatrovientos/retail-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// GetUser extracts the session user set by the session middleware
func GetUser(c *gin.Context) *entity.User {
	userVal, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := userVal.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// pageParams builds validated pagination from page/per_page query values
func pageParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

func queryPageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return pageParams(page, perPage)
}

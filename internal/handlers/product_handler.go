package handlers

import (
	"net/http"
	"strconv"

	"cartmart-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func parseFilter(c *gin.Context) *product.Filter {
	f := &product.Filter{}

	if v := c.Query("search"); v != "" {
		f.Search = &v
	}
	if v := c.Query("category"); v != "" {
		f.Category = &v
	}
	if v := c.Query("brand"); v != "" {
		f.Brand = &v
	}
	if v := c.Query("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		f.IsFeatured = &b
	}
	if v := c.Query("popular"); v != "" {
		b := v == "true"
		f.IsPopular = &b
	}
	if v := c.Query("sellerId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SellerID = &id
		}
	}

	switch c.Query("sort") {
	case "price_asc":
		f.Sort = product.SortPriceAsc
	case "price_desc":
		f.Sort = product.SortPriceDesc
	case "newest":
		f.Sort = product.SortNewest
	}

	return f
}

func parsePagination(c *gin.Context) (limit, page *int32) {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			l := int32(n)
			limit = &l
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			p := int32(n)
			page = &p
		}
	}
	return limit, page
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, page := parsePagination(c)

	products, err := h.products.List(c.Request.Context(), parseFilter(c), limit, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input product.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	var input product.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Disable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.products.Disable(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

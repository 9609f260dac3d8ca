package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/application"
	"github.com/bazarhub/catalog-api/pkg/response"
	"github.com/bazarhub/catalog-api/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type productRequest struct {
	CategoryID       string  `json:"category_id" binding:"required,uuid"`
	SubCategoryID    string  `json:"subcategory_id" binding:"omitempty,uuid"`
	SubSubCategoryID string  `json:"subsubcategory_id" binding:"omitempty,uuid"`
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" binding:"gte=0"`
	Stock            int     `json:"stock" binding:"gte=0"`
	ImageURL         string  `json:"image_url" binding:"omitempty,url"`
}

type productUpdateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreateProduct(c.Request.Context(), application.ProductInput{
		CategoryID:       req.CategoryID,
		SubCategoryID:    req.SubCategoryID,
		SubSubCategoryID: req.SubSubCategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		ImageURL:         req.ImageURL,
	})
	if err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) List(c *gin.Context) {
	ps, err := h.Svc.ListProducts(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success(c, http.StatusOK, ps, "products", nil)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	stock := -1 // leaves stock untouched
	if req.Stock != nil {
		stock = *req.Stock
	}
	p, err := h.Svc.UpdateProduct(c.Request.Context(), c.Param("id"), application.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}

// UploadImage POST /api/products/:id/image (multipart form, field "image")
func (h *ProductHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadProductImage(c.Request.Context(), c.Param("id"), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		catalogError(c, h.Logger, err, "product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil)
}

// Search GET /api/products/search?q=...&size=10
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProducts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

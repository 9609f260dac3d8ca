package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/application"
	"github.com/bazarhub/catalog-api/pkg/response"
	"github.com/bazarhub/catalog-api/pkg/validation"
)

// CatalogHandler serves the category hierarchy endpoints.
type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func catalogError(c *gin.Context, logger *logrus.Logger, err error, what string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, what+" not found", nil)
	case errors.Is(err, application.ErrAlreadyExists):
		response.Error[any](c, http.StatusBadRequest, what+" already exists", nil)
	case errors.Is(err, application.ErrParentNotFound):
		response.Error[any](c, http.StatusBadRequest, "parent "+what+" does not exist", nil)
	case errors.Is(err, application.ErrHasChildren):
		response.Error[any](c, http.StatusBadRequest, "cannot delete "+what+" while children exist", nil)
	default:
		if logger != nil {
			logger.WithError(err).Error(what + " operation failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

type categoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

type categoryUpdateRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

// --- categories ---

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "category")
		return
	}
	response.Success(c, http.StatusCreated, cat, "category created", nil)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.Svc.ListCategories(c.Request.Context())
	if err != nil {
		catalogError(c, h.Logger, err, "category")
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	cat, err := h.Svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "category")
		return
	}
	response.Success(c, http.StatusOK, cat, "category", nil)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "category")
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "category")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "category deleted", nil)
}

// --- subcategories ---

type subCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	ImageURL   string `json:"image_url" binding:"omitempty,url"`
}

func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sc, err := h.Svc.CreateSubCategory(c.Request.Context(), req.CategoryID, req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "subcategory")
		return
	}
	response.Success(c, http.StatusCreated, sc, "subcategory created", nil)
}

func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	scs, err := h.Svc.ListSubCategories(c.Request.Context(), c.Query("category_id"))
	if err != nil {
		catalogError(c, h.Logger, err, "subcategory")
		return
	}
	response.Success(c, http.StatusOK, scs, "subcategories", nil)
}

func (h *CatalogHandler) GetSubCategory(c *gin.Context) {
	sc, err := h.Svc.GetSubCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "subcategory")
		return
	}
	response.Success(c, http.StatusOK, sc, "subcategory", nil)
}

func (h *CatalogHandler) UpdateSubCategory(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sc, err := h.Svc.UpdateSubCategory(c.Request.Context(), c.Param("id"), req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "subcategory")
		return
	}
	response.Success(c, http.StatusOK, sc, "subcategory updated", nil)
}

func (h *CatalogHandler) DeleteSubCategory(c *gin.Context) {
	if err := h.Svc.DeleteSubCategory(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "subcategory")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "subcategory deleted", nil)
}

// --- subsubcategories ---

type subSubCategoryRequest struct {
	SubCategoryID string `json:"subcategory_id" binding:"required,uuid"`
	Name          string `json:"name" binding:"required"`
	ImageURL      string `json:"image_url" binding:"omitempty,url"`
}

func (h *CatalogHandler) CreateSubSubCategory(c *gin.Context) {
	var req subSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sc, err := h.Svc.CreateSubSubCategory(c.Request.Context(), req.SubCategoryID, req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "sub-subcategory")
		return
	}
	response.Success(c, http.StatusCreated, sc, "sub-subcategory created", nil)
}

func (h *CatalogHandler) ListSubSubCategories(c *gin.Context) {
	scs, err := h.Svc.ListSubSubCategories(c.Request.Context(), c.Query("subcategory_id"))
	if err != nil {
		catalogError(c, h.Logger, err, "sub-subcategory")
		return
	}
	response.Success(c, http.StatusOK, scs, "sub-subcategories", nil)
}

func (h *CatalogHandler) GetSubSubCategory(c *gin.Context) {
	sc, err := h.Svc.GetSubSubCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "sub-subcategory")
		return
	}
	response.Success(c, http.StatusOK, sc, "sub-subcategory", nil)
}

func (h *CatalogHandler) UpdateSubSubCategory(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sc, err := h.Svc.UpdateSubSubCategory(c.Request.Context(), c.Param("id"), req.Name, req.ImageURL)
	if err != nil {
		catalogError(c, h.Logger, err, "sub-subcategory")
		return
	}
	response.Success(c, http.StatusOK, sc, "sub-subcategory updated", nil)
}

func (h *CatalogHandler) DeleteSubSubCategory(c *gin.Context) {
	if err := h.Svc.DeleteSubSubCategory(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "sub-subcategory")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "sub-subcategory deleted", nil)
}

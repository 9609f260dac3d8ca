package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bazarhub/catalog-api/internal/application"
	"github.com/bazarhub/catalog-api/internal/domain/entity"
	"github.com/bazarhub/catalog-api/pkg/response"
	"github.com/bazarhub/catalog-api/pkg/validation"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	contact := &entity.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Svc.CreateContact(c.Request.Context(), contact); err != nil {
		h.Logger.WithError(err).Error("contact create failed")
		response.Error[any](c, http.StatusInternalServerError, "error saving contact", nil)
		return
	}
	response.Success(c, http.StatusCreated, contact, "contact saved", nil)
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.Svc.ListContacts(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("contact list failed")
		response.Error[any](c, http.StatusInternalServerError, "error listing contacts", nil)
		return
	}
	response.Success(c, http.StatusOK, contacts, "contacts", nil)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	contact, err := h.Svc.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "contact")
		return
	}
	response.Success(c, http.StatusOK, contact, "contact", nil)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.Svc.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "contact")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "contact deleted", nil)
}

type enquiryRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	ProductID string `json:"product_id" binding:"omitempty,uuid"`
	Message   string `json:"message" binding:"required"`
}

func (h *ContactHandler) CreateEnquiry(c *gin.Context) {
	var req enquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	enquiry := &entity.Enquiry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		ProductID: req.ProductID,
		Message:   req.Message,
	}
	if err := h.Svc.CreateEnquiry(c.Request.Context(), enquiry); err != nil {
		h.Logger.WithError(err).Error("enquiry create failed")
		response.Error[any](c, http.StatusInternalServerError, "error saving enquiry", nil)
		return
	}
	response.Success(c, http.StatusCreated, enquiry, "enquiry saved", nil)
}

func (h *ContactHandler) ListEnquiries(c *gin.Context) {
	enquiries, err := h.Svc.ListEnquiries(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("enquiry list failed")
		response.Error[any](c, http.StatusInternalServerError, "error listing enquiries", nil)
		return
	}
	response.Success(c, http.StatusOK, enquiries, "enquiries", nil)
}

func (h *ContactHandler) GetEnquiry(c *gin.Context) {
	enquiry, err := h.Svc.GetEnquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		catalogError(c, h.Logger, err, "enquiry")
		return
	}
	response.Success(c, http.StatusOK, enquiry, "enquiry", nil)
}

func (h *ContactHandler) DeleteEnquiry(c *gin.Context) {
	if err := h.Svc.DeleteEnquiry(c.Request.Context(), c.Param("id")); err != nil {
		catalogError(c, h.Logger, err, "enquiry")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "enquiry deleted", nil)
}

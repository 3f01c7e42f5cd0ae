package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"roomhive/middleware"
	"roomhive/services/property"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PropertyHandler exposes property listings over HTTP.
type PropertyHandler struct {
	svc    property.PropertyService
	logger *zap.Logger
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(svc property.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{svc: svc, logger: logger}
}

// CreatePropertyHandler handles POST /api/properties.
func (h *PropertyHandler) CreatePropertyHandler(c *gin.Context) {
	var input property.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.OwnerID = middleware.ActorID(c)

	p, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPropertyHandler handles GET /api/properties/:id.
func (h *PropertyHandler) GetPropertyHandler(c *gin.Context) {
	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListAvailableHandler handles GET /api/properties, filtered by ?city=.
func (h *PropertyHandler) ListAvailableHandler(c *gin.Context) {
	list, err := h.svc.ListAvailable(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": list})
}

// ListMyPropertiesHandler handles GET /api/properties/mine.
func (h *PropertyHandler) ListMyPropertiesHandler(c *gin.Context) {
	list, err := h.svc.ListByOwner(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": list})
}

// SetAvailabilityHandler handles PATCH /api/properties/:id/availability.
func (h *PropertyHandler) SetAvailabilityHandler(c *gin.Context) {
	var body struct {
		Availability string `json:"availability"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.svc.SetAvailability(c.Request.Context(), c.Param("id"), middleware.ActorID(c), body.Availability); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UploadPhotoHandler handles POST /api/properties/:id/photos with a multipart file.
func (h *PropertyHandler) UploadPhotoHandler(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.logger.Error("failed to buffer uploaded photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}
	defer os.Remove(tmpPath)

	ref, err := h.svc.AttachPhoto(c.Request.Context(), c.Param("id"), middleware.ActorID(c), tmpPath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"photo": ref})
}

package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"roomhive/middleware"
	"roomhive/services/storage"
	"roomhive/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account registration and authentication over HTTP.
type UserHandler struct {
	svc     user.UserService
	storage storage.StorageService
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler. Storage may be nil when no
// provider is configured; KYC upload then reports service unavailable.
func NewUserHandler(svc user.UserService, storage storage.StorageService, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, storage: storage, logger: logger}
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.svc.Authenticate(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Summary())
}

// UpdateFCMTokenHandler handles PUT /api/users/fcm-token.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.svc.UpdateFCMToken(c.Request.Context(), middleware.ActorID(c), body.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UploadKYCHandler handles POST /api/users/kyc with a multipart document.
func (h *UserHandler) UploadKYCHandler(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "document storage is not configured"})
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.logger.Error("failed to buffer uploaded document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process upload"})
		return
	}
	defer os.Remove(tmpPath)

	actorID := middleware.ActorID(c)
	publicID, err := h.storage.UploadFile(c.Request.Context(), tmpPath, "kyc/"+actorID)
	if err != nil {
		h.logger.Error("failed to upload KYC document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store document"})
		return
	}

	if err := h.svc.SetKYCDocument(c.Request.Context(), actorID, publicID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": publicID})
}

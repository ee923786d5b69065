package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xrcouture/VideostreamBackend/internal/common"
	"github.com/xrcouture/VideostreamBackend/internal/logging"
)

// AccessIssuer is the issuance policy behind POST /validate.
type AccessIssuer interface {
	Issue(ctx context.Context, email string) (string, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	access AccessIssuer
	db     Pinger
	logger logging.Logger
}

func NewHandler(access AccessIssuer, db Pinger, logger logging.Logger) *Handler {
	return &Handler{access: access, db: db, logger: logger}
}

type validateRequest struct {
	Email string `json:"email"`
}

// Validate handles POST /validate: grant a one-time signed video URL for
// the email in the request body.
func (h *Handler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(ctx, "rejected malformed request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty mailId"})
		return
	}

	url, err := h.access.Issue(ctx, req.Email)
	if err != nil {
		h.writeError(c, req.Email, err)
		return
	}

	h.logger.Info(ctx, "access granted", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// writeError maps policy failures to 400 with a short message and
// everything else to 500. Internal detail stays in the server log.
func (h *Handler) writeError(c *gin.Context, email string, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, common.ErrorValidation):
		h.logger.Warn(ctx, "rejected request without email")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty mailId"})
	case errors.Is(err, common.ErrorNotFound):
		h.logger.Warn(ctx, "no link record for email", "email", email)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid"})
	case errors.Is(err, common.ErrorAlreadyIssued):
		h.logger.Warn(ctx, "access token already issued", "email", email)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already issued"})
	default:
		h.logger.Error(ctx, "issuance failed", "email", email, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Health handles GET /healthz: 200 when the store answers a ping.
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

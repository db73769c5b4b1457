package contact

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "geotrack-backend/internal/common/errors"
)

// Handler exposes the contact submission endpoint.
type Handler struct {
	service *Service
	errors  *apperrors.ErrorHandler
}

func NewHandler(service *Service, errHandler *apperrors.ErrorHandler) *Handler {
	return &Handler{
		service: service,
		errors:  errHandler,
	}
}

// Register mounts POST /contacto on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/contacto", h.handleSubmit)
}

func (h *Handler) handleSubmit(c *gin.Context) {
	var input SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		// An absent body behaves like an empty form (rejected by the
		// consent rule); a malformed one is rejected outright.
		h.errors.Respond(c, apperrors.NewValidationFailedError("Cuerpo de la solicitud inválido."))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &input)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": result.Message,
	})
}

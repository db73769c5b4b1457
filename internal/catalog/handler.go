package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "geotrack-backend/internal/common/errors"
)

// Handler exposes the catalog lookup endpoints under /catalogos.
type Handler struct {
	repository *Repository
	errors     *apperrors.ErrorHandler
}

func NewHandler(repo *Repository, errHandler *apperrors.ErrorHandler) *Handler {
	return &Handler{
		repository: repo,
		errors:     errHandler,
	}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/catalogos")

	g.GET("/regiones", h.listAll(h.repository.Regiones))
	g.GET("/provincias/:regionId", h.listFiltered("regionId", h.repository.Provincias))
	g.GET("/comunas/:provinciaId", h.listFiltered("provinciaId", h.repository.Comunas))
	g.GET("/tipo-cliente", h.listAll(h.repository.TiposCliente))
	g.GET("/tipo-vehiculo", h.listAll(h.repository.TiposVehiculo))
	g.GET("/objetivo-rastreo", h.listAll(h.repository.ObjetivosRastreo))
	g.GET("/usa-gps", h.listAll(h.repository.UsaGps))
	g.GET("/plazo-implementacion", h.listAll(h.repository.PlazosImplementacion))
}

func (h *Handler) listAll(query func(ctx context.Context) ([]Entry, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := query(c.Request.Context())
		if err != nil {
			h.errors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func (h *Handler) listFiltered(param string, query func(ctx context.Context, id int64) ([]Entry, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Invalid ids never reach the store.
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":    false,
				"error": param + " inválido",
			})
			return
		}

		entries, err := query(c.Request.Context(), id)
		if err != nil {
			h.errors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)

	repo, mock, cleanup := newTestRepository(t)
	handler := NewHandler(repo, apperrors.NewErrorHandler(logger.NewTestLogger(t)))

	engine := gin.New()
	handler.Register(engine.Group("/api"))
	return engine, mock, cleanup
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// ==========================
// Route Tests
// ==========================

func TestCatalogRoutes_ListAll(t *testing.T) {
	engine, mock, cleanup := newCatalogRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, descripcion FROM catalogo_plazo_implementacion ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "descripcion"}).
			AddRow(1, "Inmediato").
			AddRow(2, "Dentro de 1 mes"))

	w := get(engine, "/api/catalogos/plazo-implementacion")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{ID: 1, Label: "Inmediato"}, entries[0])
}

func TestCatalogRoutes_UniformShape(t *testing.T) {
	engine, mock, cleanup := newCatalogRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, nombre FROM catalogo_regiones").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).
			AddRow(13, "Metropolitana"))

	w := get(engine, "/api/catalogos/regiones")
	require.Equal(t, http.StatusOK, w.Code)

	// The column name never leaks: every catalog answers {id, label}.
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "id")
	assert.Contains(t, raw[0], "label")
	assert.NotContains(t, raw[0], "nombre")
	assert.NotContains(t, raw[0], "descripcion")
}

func TestCatalogRoutes_EmptyResultIsJSONArray(t *testing.T) {
	engine, mock, cleanup := newCatalogRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, nombre FROM catalogo_comunas WHERE provincia_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}))

	w := get(engine, "/api/catalogos/comunas/42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

// ==========================
// Filter Parameter Tests
// ==========================

func TestCatalogRoutes_InvalidFilterIDNeverReachesStore(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"non-numeric region", "/api/catalogos/provincias/abc", "regionId inválido"},
		{"zero region", "/api/catalogos/provincias/0", "regionId inválido"},
		{"negative provincia", "/api/catalogos/comunas/-3", "provinciaId inválido"},
		{"decimal provincia", "/api/catalogos/comunas/4.5", "provinciaId inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, mock, cleanup := newCatalogRouter(t)
			defer cleanup()

			w := get(engine, tt.path)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.want, body["error"])

			// No query must have been attempted.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCatalogRoutes_StoreFailureIs500(t *testing.T) {
	engine, mock, cleanup := newCatalogRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, descripcion FROM catalogo_tipo_vehiculo").
		WillReturnError(assertErr("server has gone away"))

	w := get(engine, "/api/catalogos/tipo-vehiculo")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Error al obtener tipo vehículo", body["error"])
	assert.NotContains(t, w.Body.String(), "gone away")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

package contact

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
)

func newTestRouter(t *testing.T, persister *fakePersister, notifier *fakeNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := newTestService(t, persister, notifier)
	handler := NewHandler(svc, apperrors.NewErrorHandler(logger.NewTestLogger(t)))

	engine := gin.New()
	handler.Register(engine.Group("/api"))
	return engine
}

func postJSON(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contacto", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ==========================
// Endpoint Tests
// ==========================

func TestHandleSubmit_ValidBody(t *testing.T) {
	persister := &fakePersister{}
	notifier := &fakeNotifier{}
	engine := newTestRouter(t, persister, notifier)

	w := postJSON(engine, `{
		"nombre_razon_social": "Empresa Andina SpA",
		"correo": "contacto@andina.cl",
		"telefono": "+56 9 1234 5678",
		"tipo_cliente_id": 2,
		"cantidad_vehiculos": "10",
		"acepta_contacto": "1",
		"region_nombre": "Metropolitana"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Solicitud enviada correctamente.", body["message"])

	require.Len(t, persister.inserted, 1)
	assert.Equal(t, 1, notifier.calls)
}

func TestHandleSubmit_MissingConsent(t *testing.T) {
	persister := &fakePersister{}
	engine := newTestRouter(t, persister, &fakeNotifier{})

	w := postJSON(engine, `{
		"nombre_razon_social": "Empresa Andina SpA",
		"correo": "contacto@andina.cl",
		"telefono": "+56912345678",
		"tipo_cliente_id": 2,
		"cantidad_vehiculos": 10
	}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "aceptar ser contactado")
	assert.Empty(t, persister.inserted)
}

func TestHandleSubmit_UnknownFieldsIgnored(t *testing.T) {
	persister := &fakePersister{}
	engine := newTestRouter(t, persister, &fakeNotifier{})

	w := postJSON(engine, `{
		"nombre_razon_social": "Empresa Andina SpA",
		"correo": "contacto@andina.cl",
		"telefono": "+56912345678",
		"tipo_cliente_id": 2,
		"cantidad_vehiculos": 10,
		"acepta_contacto": true,
		"utm_source": "google",
		"honeypot": ""
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, persister.inserted, 1)
}

func TestHandleSubmit_MalformedJSON(t *testing.T) {
	engine := newTestRouter(t, &fakePersister{}, &fakeNotifier{})

	w := postJSON(engine, `{"correo": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Cuerpo de la solicitud inválido.", body["error"])
}

func TestHandleSubmit_EmptyBodyBehavesLikeEmptyForm(t *testing.T) {
	engine := newTestRouter(t, &fakePersister{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/contacto", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	// No body is treated like an all-empty form: the first rule rejects it.
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Debes indicar tu nombre o razón social.", body["error"])
}

func TestHandleSubmit_StorageFailureIsGeneric500(t *testing.T) {
	persister := &fakePersister{err: apperrors.NewStorageUnavailableError(assertableError("ECONNREFUSED 10.0.0.5:3306"))}
	engine := newTestRouter(t, persister, &fakeNotifier{})

	w := postJSON(engine, `{
		"nombre_razon_social": "Empresa Andina SpA",
		"correo": "contacto@andina.cl",
		"telefono": "+56912345678",
		"tipo_cliente_id": 2,
		"cantidad_vehiculos": 10,
		"acepta_contacto": true
	}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	// The driver detail never leaks to the caller.
	assert.Equal(t, "Error al guardar la solicitud.", body["error"])
	assert.NotContains(t, w.Body.String(), "ECONNREFUSED")
}

type assertableError string

func (e assertableError) Error() string { return string(e) }

package catalog

import (
	"context"
	"database/sql"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
	"geotrack-backend/internal/common/metrics"
)

// Geographic tables carry a `nombre` column and sort alphabetically;
// business tables carry `descripcion`. The two enumerated-state catalogs
// keep their insertion order (by id) because their labels are phrases
// like "Sí, en toda la flota" that would sort meaninglessly.
const (
	queryRegiones    = "SELECT id, nombre FROM catalogo_regiones ORDER BY nombre ASC"
	queryProvincias  = "SELECT id, nombre FROM catalogo_provincias WHERE region_id = ? ORDER BY nombre ASC"
	queryComunas     = "SELECT id, nombre FROM catalogo_comunas WHERE provincia_id = ? ORDER BY nombre ASC"
	queryTipoCliente = "SELECT id, descripcion FROM catalogo_tipo_cliente ORDER BY descripcion ASC"
	queryTipoVehic   = "SELECT id, descripcion FROM catalogo_tipo_vehiculo ORDER BY descripcion ASC"
	queryObjetivo    = "SELECT id, descripcion FROM catalogo_objetivo_rastreo ORDER BY descripcion ASC"
	queryUsaGps      = "SELECT id, descripcion FROM catalogo_usa_gps ORDER BY id ASC"
	queryPlazo       = "SELECT id, descripcion FROM catalogo_plazo_implementacion ORDER BY id ASC"
)

// Repository runs the catalog lookups. A filter that matches nothing is
// an empty result, not an error; only an unreachable store fails.
type Repository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

func (r *Repository) Regiones(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "regiones", queryRegiones)
}

func (r *Repository) Provincias(ctx context.Context, regionID int64) ([]Entry, error) {
	return r.queryEntries(ctx, "provincias", queryProvincias, regionID)
}

func (r *Repository) Comunas(ctx context.Context, provinciaID int64) ([]Entry, error) {
	return r.queryEntries(ctx, "comunas", queryComunas, provinciaID)
}

func (r *Repository) TiposCliente(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "tipo cliente", queryTipoCliente)
}

func (r *Repository) TiposVehiculo(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "tipo vehículo", queryTipoVehic)
}

func (r *Repository) ObjetivosRastreo(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "objetivos de rastreo", queryObjetivo)
}

func (r *Repository) UsaGps(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "usa GPS", queryUsaGps)
}

func (r *Repository) PlazosImplementacion(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, "plazos de implementación", queryPlazo)
}

func (r *Repository) queryEntries(ctx context.Context, catalog, query string, args ...interface{}) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.storeFailure(catalog, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Label); err != nil {
			return nil, r.storeFailure(catalog, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storeFailure(catalog, err)
	}

	return entries, nil
}

func (r *Repository) storeFailure(catalog string, err error) error {
	metrics.CatalogQueriesFailed.WithLabelValues(catalog).Inc()
	r.logger.Error("Catalog query failed", map[string]interface{}{
		"catalog": catalog,
		"error":   err.Error(),
	})
	return apperrors.NewDependencyUnavailableError(catalog, err)
}

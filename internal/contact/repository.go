package contact

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/logger"
)

// MySQL raises errno 1644 for SIGNAL SQLSTATE '45000' thrown by the
// validation triggers on contacto_solicitudes. Those are business rules
// the caller can fix, everything else is infrastructure.
const mysqlErrSignalException = 1644

const insertSubmissionQuery = `
	INSERT INTO contacto_solicitudes (
		nombre_razon_social,
		correo,
		telefono,
		region_id,
		provincia_id,
		comuna_id,
		tipo_cliente_id,
		cantidad_vehiculos,
		tipo_vehiculo_id,
		objetivo_rastreo_id,
		usa_gps_id,
		plazo_implementacion_id,
		detalle_requerimiento,
		acepta_contacto
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Repository persists validated submissions.
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

// Insert writes exactly one row for the record. A trigger SIGNAL maps to
// CONSTRAINT_VIOLATION with the server's message; any other failure maps
// to STORAGE_UNAVAILABLE.
func (r *Repository) Insert(ctx context.Context, rec *SubmissionRecord) error {
	consent := 0
	if rec.AceptaContacto {
		consent = 1
	}

	_, err := r.db.ExecContext(ctx, insertSubmissionQuery,
		rec.NombreRazonSocial,
		rec.Correo,
		rec.Telefono,
		rec.RegionID,
		rec.ProvinciaID,
		rec.ComunaID,
		rec.TipoClienteID,
		rec.CantidadVehiculos,
		rec.TipoVehiculoID,
		rec.ObjetivoRastreoID,
		rec.UsaGpsID,
		rec.PlazoImplementacionID,
		rec.DetalleRequerimiento,
		consent,
	)
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrSignalException {
		return apperrors.NewConstraintViolationError(mysqlErr.Message)
	}

	return apperrors.NewStorageUnavailableError(err)
}

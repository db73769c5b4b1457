package contact

// SubmissionInput is the contact form body exactly as received. Nothing
// about it is trusted: the frontend and third-party form fillers send
// numbers as strings, booleans as "1", and omit fields at will, so every
// field is untyped until the normalizer has coerced it.
type SubmissionInput struct {
	NombreRazonSocial any `json:"nombre_razon_social"`
	Correo            any `json:"correo"`
	Telefono          any `json:"telefono"`

	RegionID    any `json:"region_id"`
	ProvinciaID any `json:"provincia_id"`
	ComunaID    any `json:"comuna_id"`

	TipoClienteID     any `json:"tipo_cliente_id"`
	CantidadVehiculos any `json:"cantidad_vehiculos"`

	TipoVehiculoID        any `json:"tipo_vehiculo_id"`
	ObjetivoRastreoID     any `json:"objetivo_rastreo_id"`
	UsaGpsID              any `json:"usa_gps_id"`
	PlazoImplementacionID any `json:"plazo_implementacion_id"`

	DetalleRequerimiento any `json:"detalle_requerimiento"`
	AceptaContacto       any `json:"acepta_contacto"`

	// Human-readable labels sent by the frontend for the notification
	// emails. Never persisted.
	RegionNombre       any `json:"region_nombre"`
	ProvinciaNombre    any `json:"provincia_nombre"`
	ComunaNombre       any `json:"comuna_nombre"`
	TipoClienteNombre  any `json:"tipo_cliente_nombre"`
	TipoVehiculoNombre any `json:"tipo_vehiculo_nombre"`
	ObjetivoNombre     any `json:"objetivo_nombre"`
	UsaGpsNombre       any `json:"usa_gps_nombre"`
	PlazoNombre        any `json:"plazo_nombre"`
}

// SubmissionRecord is the normalized, typed form of a submission. Only a
// SubmissionRecord can reach the persister, which keeps unvalidated data
// out of the database by construction.
type SubmissionRecord struct {
	NombreRazonSocial string
	Correo            string
	Telefono          string

	RegionID    *int64
	ProvinciaID *int64
	ComunaID    *int64

	TipoClienteID     *int64
	CantidadVehiculos *int64

	TipoVehiculoID        *int64
	ObjetivoRastreoID     *int64
	UsaGpsID              *int64
	PlazoImplementacionID *int64

	DetalleRequerimiento *string
	AceptaContacto       bool
}

// Labels carries the human-readable names for the reference ids. Empty
// values render as an em dash in notification bodies.
type Labels struct {
	Region       string
	Provincia    string
	Comuna       string
	TipoCliente  string
	TipoVehiculo string
	Objetivo     string
	UsaGps       string
	Plazo        string
}

// Channel identifies one of the two notification targets.
type Channel string

const (
	ChannelInternal Channel = "internal"
	ChannelClient   Channel = "client"
)

// NotificationOutcome is the per-channel result of a dispatch attempt.
type NotificationOutcome struct {
	Channel   Channel `json:"channel"`
	Recipient string  `json:"recipient"`
	Delivered bool    `json:"delivered"`
	Error     string  `json:"error,omitempty"`
}

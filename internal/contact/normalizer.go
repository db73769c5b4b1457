package contact

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize coerces a raw submission into a typed record. It never fails:
// values that cannot be coerced become nil (optional fields) or empty
// strings (required fields, rejected later by the validator). Applying it
// to already-normalized values is a no-op.
func Normalize(in *SubmissionInput) *SubmissionRecord {
	return &SubmissionRecord{
		NombreRazonSocial: asString(in.NombreRazonSocial),
		Correo:            asString(in.Correo),
		Telefono:          asString(in.Telefono),

		RegionID:    asIntPtr(in.RegionID),
		ProvinciaID: asIntPtr(in.ProvinciaID),
		ComunaID:    asIntPtr(in.ComunaID),

		TipoClienteID:     asIntPtr(in.TipoClienteID),
		CantidadVehiculos: asIntPtr(in.CantidadVehiculos),

		TipoVehiculoID:        asIntPtr(in.TipoVehiculoID),
		ObjetivoRastreoID:     asIntPtr(in.ObjetivoRastreoID),
		UsaGpsID:              asIntPtr(in.UsaGpsID),
		PlazoImplementacionID: asIntPtr(in.PlazoImplementacionID),

		DetalleRequerimiento: asStringPtr(in.DetalleRequerimiento),
		AceptaContacto:       isTruthy(in.AceptaContacto),
	}
}

// NormalizeLabels extracts the display labels, trimmed. Missing or
// non-string labels come out empty.
func NormalizeLabels(in *SubmissionInput) Labels {
	return Labels{
		Region:       asString(in.RegionNombre),
		Provincia:    asString(in.ProvinciaNombre),
		Comuna:       asString(in.ComunaNombre),
		TipoCliente:  asString(in.TipoClienteNombre),
		TipoVehiculo: asString(in.TipoVehiculoNombre),
		Objetivo:     asString(in.ObjetivoNombre),
		UsaGps:       asString(in.UsaGpsNombre),
		Plazo:        asString(in.PlazoNombre),
	}
}

// asString coerces to a trimmed string. Numbers are formatted, anything
// else becomes empty.
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// asStringPtr is asString with empty collapsed to nil, for optional
// free-text columns (NULL in the database, never '').
func asStringPtr(v any) *string {
	s := asString(v)
	if s == "" {
		return nil
	}
	return &s
}

// asIntPtr coerces to an integer. Anything not representable as a finite
// number becomes nil.
func asIntPtr(v any) *int64 {
	switch val := v.(type) {
	case int64:
		return &val
	case int:
		n := int64(val)
		return &n
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		n := int64(val)
		return &n
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		return asIntPtr(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		n := int64(f)
		return &n
	default:
		return nil
	}
}

// isTruthy implements the strict truthy set for the consent checkbox:
// true, 1, "1" and "true". Everything else, including absence, is false.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val == 1
	case int:
		return val == 1
	case int64:
		return val == 1
	case json.Number:
		return val.String() == "1"
	case string:
		return val == "1" || val == "true"
	default:
		return false
	}
}

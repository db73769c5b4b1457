package contact

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "geotrack-backend/internal/common/errors"
	"geotrack-backend/internal/common/mail"
)

// Rule is one named validation step over a normalized record. Rules run
// in order and the first failure wins; its message is shown to the caller.
type Rule struct {
	Name  string
	Check func(r *SubmissionRecord) error
}

// RuleSet is an ordered list of rules. The set is data rather than code
// because earlier iterations of this form disagreed on which fields were
// mandatory; deployments can assemble their own set.
type RuleSet []Rule

// Validate runs the rules in order and wraps the first violation as a
// VALIDATION_FAILED error. Returns nil when the record is acceptable.
func (rs RuleSet) Validate(r *SubmissionRecord) error {
	for _, rule := range rs {
		if err := rule.Check(r); err != nil {
			return apperrors.NewValidationFailedError(err.Error())
		}
	}
	return nil
}

// DefaultRules is the canonical rule set: the fields needed to open a
// sales conversation are mandatory, everything else refines the lead.
func DefaultRules() RuleSet {
	return RuleSet{
		{
			Name: "nombre",
			Check: func(r *SubmissionRecord) error {
				return validation.Validate(r.NombreRazonSocial,
					validation.Required.Error("Debes indicar tu nombre o razón social."),
				)
			},
		},
		{
			Name: "correo",
			Check: func(r *SubmissionRecord) error {
				return validation.Validate(r.Correo,
					validation.Required.Error("Debes indicar un correo de contacto."),
					validation.Match(mail.EmailRegexp).Error("El correo no tiene un formato válido."),
				)
			},
		},
		{
			Name: "telefono",
			Check: func(r *SubmissionRecord) error {
				return validation.Validate(r.Telefono,
					validation.Required.Error("Debes indicar un teléfono de contacto."),
				)
			},
		},
		{
			Name: "acepta_contacto",
			Check: func(r *SubmissionRecord) error {
				// ozzo skips zero values, so the checkbox is checked by hand.
				if !r.AceptaContacto {
					return errConsent
				}
				return nil
			},
		},
		{
			Name: "tipo_cliente",
			Check: func(r *SubmissionRecord) error {
				return validation.Validate(r.TipoClienteID,
					validation.Required.Error("Debes seleccionar un tipo de cliente."),
					validation.Min(int64(1)).Error("Debes seleccionar un tipo de cliente."),
				)
			},
		},
		{
			Name: "cantidad_vehiculos",
			Check: func(r *SubmissionRecord) error {
				return validation.Validate(r.CantidadVehiculos,
					validation.Required.Error("Debes indicar la cantidad de vehículos."),
					validation.Min(int64(1)).Error("La cantidad de vehículos debe ser al menos 1."),
				)
			},
		},
	}
}

var errConsent = validation.NewError(
	"validation_consent_required",
	"Debes aceptar ser contactado para enviar el formulario.",
)

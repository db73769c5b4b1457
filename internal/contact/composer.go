package contact

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

const brandName = "JD GeoTrack"

// placeholder rendered wherever a label or optional field is missing.
const missingValue = "—"

// Notification is a composed message body pair for one channel.
type Notification struct {
	Subject string
	Text    string
	HTML    string
}

// commonFields is the label-resolved view of a record shared by both
// notification flavors.
type commonFields struct {
	Nombre    string
	Correo    string
	Telefono  string
	Ubicacion string
	Detalle   string

	TipoCliente  string
	Cantidad     string
	TipoVehiculo string
	Objetivo     string
	UsaGps       string
	Plazo        string
	Acepta       string
}

func buildCommon(rec *SubmissionRecord, labels Labels) commonFields {
	ubicacion := missingValue
	parts := make([]string, 0, 3)
	for _, p := range []string{labels.Comuna, labels.Provincia, labels.Region} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		ubicacion = strings.Join(parts, ", ")
	}

	cantidad := missingValue
	if rec.CantidadVehiculos != nil {
		cantidad = strconv.FormatInt(*rec.CantidadVehiculos, 10)
	}

	detalle := missingValue
	if rec.DetalleRequerimiento != nil {
		detalle = *rec.DetalleRequerimiento
	}

	acepta := "No"
	if rec.AceptaContacto {
		acepta = "Sí"
	}

	return commonFields{
		Nombre:    orDash(rec.NombreRazonSocial),
		Correo:    orDash(rec.Correo),
		Telefono:  orDash(rec.Telefono),
		Ubicacion: ubicacion,
		Detalle:   detalle,

		TipoCliente:  orDash(labels.TipoCliente),
		Cantidad:     cantidad,
		TipoVehiculo: orDash(labels.TipoVehiculo),
		Objetivo:     orDash(labels.Objetivo),
		UsaGps:       orDash(labels.UsaGps),
		Plazo:        orDash(labels.Plazo),
		Acepta:       acepta,
	}
}

// ComposeInternal renders the full-detail notification for the operations
// mailbox.
func ComposeInternal(rec *SubmissionRecord, labels Labels) Notification {
	f := buildCommon(rec, labels)

	nombre := rec.NombreRazonSocial
	if nombre == "" {
		nombre = "Solicitud"
	}

	text := strings.Join([]string{
		"NUEVA SOLICITUD DE CONTACTO - " + brandName,
		"",
		"Nombre/Razón social: " + f.Nombre,
		"Correo: " + f.Correo,
		"Teléfono: " + f.Telefono,
		"Ubicación: " + f.Ubicacion,
		"",
		"Tipo cliente: " + f.TipoCliente,
		"Cantidad vehículos: " + f.Cantidad,
		"Tipo vehículo: " + f.TipoVehiculo,
		"Objetivo: " + f.Objetivo,
		"¿Usa GPS?: " + f.UsaGps,
		"Plazo: " + f.Plazo,
		"Acepta contacto: " + f.Acepta,
		"",
		"Detalle:",
		f.Detalle,
	}, "\n")

	htmlBody := fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>%s — Nueva solicitud de contacto</h2>
<p><b>Nombre/Razón social:</b> %s</p>
<p><b>Correo:</b> %s</p>
<p><b>Teléfono:</b> %s</p>
<p><b>Ubicación:</b> %s</p>
<hr/>
<p><b>Tipo cliente:</b> %s</p>
<p><b>Cantidad vehículos:</b> %s</p>
<p><b>Tipo vehículo:</b> %s</p>
<p><b>Objetivo:</b> %s</p>
<p><b>¿Usa GPS?:</b> %s</p>
<p><b>Plazo:</b> %s</p>
<p><b>Acepta contacto:</b> %s</p>
<hr/>
<p><b>Detalle:</b></p>
<pre style="background:#f5f5f5;padding:10px;border-radius:8px;white-space:pre-wrap">%s</pre>
</div>`,
		brandName,
		esc(f.Nombre), esc(f.Correo), esc(f.Telefono), esc(f.Ubicacion),
		esc(f.TipoCliente), esc(f.Cantidad), esc(f.TipoVehiculo),
		esc(f.Objetivo), esc(f.UsaGps), esc(f.Plazo), esc(f.Acepta),
		esc(f.Detalle),
	)

	return Notification{
		Subject: fmt.Sprintf("Nuevo contacto: %s — %s", nombre, brandName),
		Text:    text,
		HTML:    htmlBody,
	}
}

// ComposeClient renders the abbreviated acknowledgment for the submitter.
func ComposeClient(rec *SubmissionRecord, labels Labels) Notification {
	f := buildCommon(rec, labels)

	saludo := "Hola,"
	saludoHTML := "Hola,"
	if rec.NombreRazonSocial != "" {
		saludo = "Hola " + rec.NombreRazonSocial + ","
		saludoHTML = "Hola <b>" + esc(rec.NombreRazonSocial) + "</b>,"
	}

	text := strings.Join([]string{
		saludo,
		"",
		"Recibimos tu solicitud de contacto en " + brandName + ".",
		"En breve un integrante de nuestro equipo se comunicará contigo.",
		"",
		"Resumen:",
		"- Nombre/Razón social: " + f.Nombre,
		"- Teléfono: " + f.Telefono,
		"- Ubicación: " + f.Ubicacion,
		"- Tipo cliente: " + f.TipoCliente,
		"- Cantidad de vehículos: " + f.Cantidad,
		"",
		"Gracias por contactarnos.",
		brandName,
	}, "\n")

	htmlBody := fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>¡Solicitud recibida!</h2>
<p>%s</p>
<p>Recibimos tu solicitud de contacto en <b>%s</b>. En breve un integrante de nuestro equipo se comunicará contigo.</p>
<hr/>
<p><b>Resumen:</b></p>
<ul>
<li><b>Nombre/Razón social:</b> %s</li>
<li><b>Teléfono:</b> %s</li>
<li><b>Ubicación:</b> %s</li>
<li><b>Tipo cliente:</b> %s</li>
<li><b>Cantidad de vehículos:</b> %s</li>
</ul>
<p style="margin-top:14px">Gracias por contactarnos.<br/>%s</p>
</div>`,
		saludoHTML,
		brandName,
		esc(f.Nombre), esc(f.Telefono), esc(f.Ubicacion),
		esc(f.TipoCliente), esc(f.Cantidad),
		brandName,
	)

	return Notification{
		Subject: fmt.Sprintf("Recibimos tu solicitud — %s", brandName),
		Text:    text,
		HTML:    htmlBody,
	}
}

func orDash(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}

// esc escapes the five reserved markup characters so free text cannot
// inject markup into the rendered message.
func esc(s string) string {
	return html.EscapeString(s)
}

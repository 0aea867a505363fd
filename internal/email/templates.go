package email

import (
	"fmt"
	"strings"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

// Templates mínimos en código. No hay sistema de templates por ahora: dos
// emails transaccionales no lo ameritan.

// OrderConfirmation arma subject/cuerpos para la confirmación de una orden.
func OrderConfirmation(o *repository.Order) (subject, html, text string) {
	subject = fmt.Sprintf("Ergiva — pedido %s recibido", shortID(o.ID))

	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "  - %s x%d (₹%.2f)\n", it.Title, it.Quantity, paiseToRupees(it.Price*int64(it.Quantity)))
	}
	text = fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu pedido %s.\n\n%s\nTotal: ₹%.2f\nPago: %s\n\nTe avisamos cuando salga en camino.\n",
		o.ShippingName, shortID(o.ID), items.String(), paiseToRupees(o.Total), o.PaymentMode,
	)
	html = fmt.Sprintf(
		"<p>Hola %s,</p><p>Recibimos tu pedido <b>%s</b>.</p><p>Total: <b>₹%.2f</b> — pago: %s.</p><p>Te avisamos cuando salga en camino.</p>",
		o.ShippingName, shortID(o.ID), paiseToRupees(o.Total), o.PaymentMode,
	)
	return subject, html, text
}

// SessionConfirmation arma subject/cuerpos para la confirmación de reserva.
func SessionConfirmation(b *repository.Session) (subject, html, text string) {
	subject = fmt.Sprintf("Ergiva — reserva %s recibida", shortID(b.ID))
	date := b.PreferredDate.Format("02 Jan 2006")
	text = fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu reserva de sesión a domicilio para el %s (%s).\nDirección: %s\n\nUn fisioterapeuta te va a contactar para confirmar el horario.\n",
		b.PatientName, date, b.Slot, b.Address,
	)
	html = fmt.Sprintf(
		"<p>Hola %s,</p><p>Recibimos tu reserva de sesión a domicilio para el <b>%s</b> (%s).</p><p>Un fisioterapeuta te va a contactar para confirmar el horario.</p>",
		b.PatientName, date, b.Slot,
	)
	return subject, html, text
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func paiseToRupees(p int64) float64 { return float64(p) / 100 }

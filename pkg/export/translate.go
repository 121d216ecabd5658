package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var statusLabels = map[string]string{
	"active":    "Activo",
	"complete":  "Completado",
	"cancelled": "Cancelado",
	"draft":     "Borrador",
	"pending":   "Pendiente",
	"confirmed": "Confirmado",
	"completed": "Completado",
	"refunded":  "Reembolsado",
	"failed":    "Fallido",
	"sent":      "Enviado",
	"read":      "Leído",
}

var paymentMethodLabels = map[string]string{
	"cash":     "Efectivo",
	"transfer": "Transferencia",
	"card":     "Tarjeta",
	"other":    "Otro",
}

var communicationTypeLabels = map[string]string{
	"email":        "Correo",
	"sms":          "SMS",
	"notification": "Notificación",
}

var monthNames = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

// TranslateStatus returns the Spanish label for any entity status. Unknown codes pass through.
func TranslateStatus(code string) string {
	return lookup(statusLabels, code)
}

// TranslatePaymentMethod returns the Spanish label for a payment method.
func TranslatePaymentMethod(code string) string {
	return lookup(paymentMethodLabels, code)
}

// TranslateCommunicationType returns the Spanish label for a communication channel.
func TranslateCommunicationType(code string) string {
	return lookup(communicationTypeLabels, code)
}

func lookup(labels map[string]string, code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}

// LongDate formats t as "14 de mayo de 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// ShortDate formats t as "14/5/2024", or "" for the zero time.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// Currency formats an amount as "$150.50".
func Currency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

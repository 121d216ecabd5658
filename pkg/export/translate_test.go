package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTranslateStatus(t *testing.T) {
	cases := map[string]string{
		"active":    "Activo",
		"completed": "Completado",
		"complete":  "Completado",
		"refunded":  "Reembolsado",
		"read":      "Leído",
		"archived":  "archived",
		"":          "",
	}
	for code, want := range cases {
		assert.Equal(t, want, TranslateStatus(code), code)
	}
}

func TestTranslatePaymentMethodAndType(t *testing.T) {
	assert.Equal(t, "Efectivo", TranslatePaymentMethod("cash"))
	assert.Equal(t, "crypto", TranslatePaymentMethod("crypto"))
	assert.Equal(t, "Notificación", TranslateCommunicationType("notification"))
	assert.Equal(t, "fax", TranslateCommunicationType("fax"))
}

func TestDateAndCurrencyFormatting(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 de enero de 2024", LongDate(d))
	assert.Equal(t, "5/1/2024", ShortDate(d))
	assert.Equal(t, "", ShortDate(time.Time{}))
	assert.Equal(t, "$150.50", Currency(decimal.RequireFromString("150.5")))
	assert.Equal(t, "$0.00", Currency(decimal.Zero))
}

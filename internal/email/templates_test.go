package email

import (
	"strings"
	"testing"
	"time"

	"github.com/ergiva/ergiva-server/internal/domain/repository"
)

func TestOrderConfirmation(t *testing.T) {
	o := &repository.Order{
		ID:           "abcdef12-3456-7890-abcd-ef1234567890",
		ShippingName: "Ana",
		PaymentMode:  repository.PaymentCOD,
		Total:        499800,
		Items: []repository.OrderItem{
			{Title: "TENS portátil", Price: 249900, Quantity: 2},
		},
	}
	subject, html, text := OrderConfirmation(o)

	if !strings.Contains(subject, "abcdef12") {
		t.Fatalf("subject sin id corto: %q", subject)
	}
	if !strings.Contains(text, "TENS portátil x2") {
		t.Fatalf("texto sin renglones: %q", text)
	}
	// Paise → rupias con dos decimales.
	if !strings.Contains(text, "4998.00") || !strings.Contains(html, "4998.00") {
		t.Fatalf("total mal formateado:\n%s\n%s", text, html)
	}
}

func TestSessionConfirmation(t *testing.T) {
	s := &repository.Session{
		ID:            "11112222-3333-4444-5555-666677778888",
		PatientName:   "Ana",
		Address:       "Calle 1, Delhi",
		Slot:          "morning",
		PreferredDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}
	subject, html, text := SessionConfirmation(s)

	if !strings.Contains(subject, "11112222") {
		t.Fatalf("subject sin id corto: %q", subject)
	}
	if !strings.Contains(text, "04 Sep 2026") || !strings.Contains(html, "04 Sep 2026") {
		t.Fatalf("fecha mal formateada:\n%s", text)
	}
	if !strings.Contains(text, "morning") {
		t.Fatalf("slot ausente: %q", text)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID corto = %q", got)
	}
	if got := shortID("123456789"); got != "12345678" {
		t.Fatalf("shortID largo = %q", got)
	}
}

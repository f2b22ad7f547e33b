package pdfgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

func testInvoice() domain.Invoice {
	return domain.Invoice{
		ID:       7,
		Number:   "INV-2026-0007",
		UserID:   3,
		Amount:   4100.50,
		Details:  "Замена колёс, балансировка",
		Status:   domain.InvoiceStatusUnpaid,
		IssuedAt: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestQRPayloadVerify(t *testing.T) {
	r := NewRenderer("SMC Wheel Shop", "qr-secret")

	payload := r.QRPayload(testInvoice())
	assert.True(t, strings.HasPrefix(payload, "INV-2026-0007|4100.50|"))
	assert.True(t, r.VerifyQRPayload(payload))
}

func TestVerifyQRPayload_Tampered(t *testing.T) {
	r := NewRenderer("SMC Wheel Shop", "qr-secret")
	payload := r.QRPayload(testInvoice())

	// Подмена суммы ломает подпись
	tampered := strings.Replace(payload, "4100.50", "100.00", 1)
	assert.False(t, r.VerifyQRPayload(tampered))

	assert.False(t, r.VerifyQRPayload("no-signature-here"))
	assert.False(t, r.VerifyQRPayload(""))
}

func TestVerifyQRPayload_WrongSecret(t *testing.T) {
	issuer := NewRenderer("SMC Wheel Shop", "secret-a")
	verifier := NewRenderer("SMC Wheel Shop", "secret-b")

	payload := issuer.QRPayload(testInvoice())
	assert.False(t, verifier.VerifyQRPayload(payload))
}

func TestRender(t *testing.T) {
	r := NewRenderer("SMC Wheel Shop", "qr-secret")

	pdf, err := r.Render(testInvoice(), "Иван Петров", "Замена колёс")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

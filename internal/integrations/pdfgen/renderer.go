// Package pdfgen генерация PDF-документов счетов.
// В каждый счёт встраивается QR-код с подписанным HMAC payload,
// по которому мастерская проверяет подлинность при оплате
package pdfgen

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

const qrImageSize = 256

// Renderer генерирует PDF-представление счета
type Renderer struct {
	shopName string
	secret   []byte
}

// NewRenderer создает новый экземпляр Renderer.
// secret используется для HMAC-подписи QR payload
func NewRenderer(shopName, secret string) *Renderer {
	return &Renderer{
		shopName: shopName,
		secret:   []byte(secret),
	}
}

// QRPayload возвращает подписанную строку вида number|amount|issued_at|signature
func (r *Renderer) QRPayload(inv domain.Invoice) string {
	data := fmt.Sprintf("%s|%.2f|%d", inv.Number, inv.Amount, inv.IssuedAt.Unix())

	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload проверяет подпись payload, выданного QRPayload
func (r *Renderer) VerifyQRPayload(payload string) bool {
	idx := strings.LastIndexByte(payload, '|')
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}

// Render генерирует PDF-документ счета
func (r *Renderer) Render(inv domain.Invoice, customerName, serviceName string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(r.QRPayload(inv), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQRGenerate, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, r.shopName)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Invoice %s", inv.Number))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format("2006-01-02")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", customerName))
	pdf.Ln(8)
	if serviceName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Service: %s", serviceName))
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", inv.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Amount due: %.2f", inv.Amount))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "I", 9)
	pdf.SetY(-30)
	pdf.Cell(0, 8, "Scan the QR code at the front desk to verify and pay this invoice.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGenerate, err)
	}

	return buf.Bytes(), nil
}

package pdfgen

import "errors"

var (
	ErrQRGenerate  = errors.New("failed to generate QR code")
	ErrPDFGenerate = errors.New("failed to generate PDF document")
)

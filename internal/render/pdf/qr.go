package pdf

import (
	"fmt"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// qrPixels is the rendered side of a QR code before it is scaled into its box.
const qrPixels = 256

// PrepareQR encodes content as a medium error-correction QR code.
func PrepareQR(content string) (*Prepared, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	scaled, err := barcode.Scale(code, qrPixels, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}
	return EncodeImage(scaled, 0)
}

package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// TicketQRContent is the payload scanned at the venue entrance.
func TicketQRContent(ticketID, eventID, userID uint, quantity int) string {
	return fmt.Sprintf("EVENTHUB|ticket=%d|event=%d|user=%d|qty=%d", ticketID, eventID, userID, quantity)
}

// GenerateQRCodePNG renders content as a PNG image.
func GenerateQRCodePNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

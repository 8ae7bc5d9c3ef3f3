package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders PNG QR codes for public demo pages, for restaurants that
// want to print them on physical menus.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateDemoQR returns a PNG QR code pointing at the public demo page of a
// dish order.
func (s *QRService) GenerateDemoQR(dishOrderID uint, size int) ([]byte, error) {
	demoURL := fmt.Sprintf("%s/demo/dish/%d", s.baseURL, dishOrderID)

	png, err := qrcode.Encode(demoURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}

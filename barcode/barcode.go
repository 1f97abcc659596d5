// Package barcode encodes cell values as barcode images.
//
// QR and Code 128 symbols come from github.com/boombuler/barcode, PDF417 from
// github.com/ruudk/golang-pdf417. Images are returned at one pixel per
// module; the surface scales them into the cell.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	pdf417 "github.com/ruudk/golang-pdf417"
)

// Kind selects a symbology.
type Kind string

const (
	QR      Kind = "qr"
	Code128 Kind = "code128"
	PDF417  Kind = "pdf417"
)

// ErrUnknownKind is returned for an unsupported symbology.
var ErrUnknownKind = errors.New("barcode: unknown kind")

// PDF417 layout parameters.
const (
	pdf417Columns       = 4
	pdf417SecurityLevel = 2
)

// AspectRatio is the width-to-height ratio a symbol is drawn at.
func AspectRatio(k Kind) float64 {
	switch normalize(k) {
	case Code128:
		return 3
	case PDF417:
		return 3
	}
	return 1
}

// Encode renders data as a barcode image of the given kind.
func Encode(k Kind, data string) (image.Image, error) {
	if data == "" {
		return nil, fmt.Errorf("barcode: %s: empty data", k)
	}
	switch normalize(k) {
	case QR:
		code, err := qr.Encode(data, qr.M, qr.Auto)
		if err != nil {
			return nil, fmt.Errorf("barcode: qr: %w", err)
		}
		return code, nil
	case Code128:
		code, err := code128.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("barcode: code128: %w", err)
		}
		return code, nil
	case PDF417:
		return pdf417.Encode(data, pdf417Columns, pdf417SecurityLevel), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func normalize(k Kind) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(string(k))))
}

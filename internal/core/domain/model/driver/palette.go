package driver

import "routeengine/internal/pkg/errs"

// ErrPaletteIsEmpty is returned when picking a color from an empty palette.
var ErrPaletteIsEmpty = errs.NewValueIsRequiredError("palette")

// PaletteColor returns the color for the n-th driver, cycling through palette.
func PaletteColor(palette []string, n int) (string, error) {
	if len(palette) == 0 {
		return "", ErrPaletteIsEmpty
	}
	if n < 0 {
		n = -n
	}
	return palette[n%len(palette)], nil
}

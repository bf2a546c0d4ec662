package colors

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Goodie          = Color{51, 76, 76, 255}
	Grey            = Color{192, 192, 192, 255}
	DarkGrey        = Color{128, 128, 128, 255}
	VeryDarkGrey    = Color{64, 64, 64, 255}
	Red             = Color{255, 0, 0, 255}
	DarkRed         = Color{128, 0, 0, 255}
	VeryDarkRed     = Color{64, 0, 0, 255}
	Yellow          = Color{255, 255, 0, 255}
	DarkYellow      = Color{128, 128, 0, 255}
	VeryDarkYellow  = Color{64, 64, 0, 255}
	Green           = Color{0, 255, 0, 255}
	DarkGreen       = Color{0, 128, 0, 255}
	VeryDarkGreen   = Color{0, 64, 0, 255}
	Cyan            = Color{0, 255, 255, 255}
	DarkCyan        = Color{0, 128, 128, 255}
	VeryDarkCyan    = Color{0, 64, 64, 255}
	Blue            = Color{0, 0, 255, 255}
	DarkBlue        = Color{0, 0, 128, 255}
	VeryDarkBlue    = Color{0, 0, 64, 255}
	Magenta         = Color{255, 0, 255, 255}
	DarkMagenta     = Color{128, 0, 128, 255}
	VeryDarkMagenta = Color{64, 0, 64, 255}
	White           = Color{255, 255, 255, 255}
	Black           = Color{0, 0, 0, 255}
	Blank           = Color{0, 0, 0, 0}
)

var palette = map[string]Color{
	"goodie":          Goodie,
	"grey":            Grey,
	"darkgrey":        DarkGrey,
	"verydarkgrey":    VeryDarkGrey,
	"red":             Red,
	"darkred":         DarkRed,
	"verydarkred":     VeryDarkRed,
	"yellow":          Yellow,
	"darkyellow":      DarkYellow,
	"verydarkyellow":  VeryDarkYellow,
	"green":           Green,
	"darkgreen":       DarkGreen,
	"verydarkgreen":   VeryDarkGreen,
	"cyan":            Cyan,
	"darkcyan":        DarkCyan,
	"verydarkcyan":    VeryDarkCyan,
	"blue":            Blue,
	"darkblue":        DarkBlue,
	"verydarkblue":    VeryDarkBlue,
	"magenta":         Magenta,
	"darkmagenta":     DarkMagenta,
	"verydarkmagenta": VeryDarkMagenta,
	"white":           White,
	"black":           Black,
	"blank":           Blank,
}

// Vec4 returns the color as normalized floats in [0,1].
func (c Color) Vec4() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Parse accepts a palette name ("goodie", "dark_red", "Very Dark Blue") or a
// hex string "#rrggbb" / "#rrggbbaa".
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	if c, ok := palette[key]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("colors: unknown color %q", s)
}

func parseHex(s string) (Color, error) {
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("colors: bad hex color %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Color{}, fmt.Errorf("colors: bad hex color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// Palette returns the named colors in a stable order.
func Palette() []Color {
	return []Color{
		Goodie, Grey, DarkGrey, VeryDarkGrey,
		Red, DarkRed, VeryDarkRed,
		Yellow, DarkYellow, VeryDarkYellow,
		Green, DarkGreen, VeryDarkGreen,
		Cyan, DarkCyan, VeryDarkCyan,
		Blue, DarkBlue, VeryDarkBlue,
		Magenta, DarkMagenta, VeryDarkMagenta,
		White, Black, Blank,
	}
}

package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

// Color is an RGB triple decoded from a hex style value.
type Color struct {
	R, G, B uint8
}

// Red text thresholds: departed members.
const (
	redMinR = 200
	redMaxG = 80
	redMaxB = 80
)

// Green fill thresholds: agent groups. Green must dominate both other
// channels by greenMargin.
const (
	greenMinG   = 160
	greenMargin = 20
)

// ParseHexColor decodes "#RRGGBB" or "#RRGGBBAA". The alpha channel is ignored.
func ParseHexColor(value string) (Color, bool) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(cleaned) != 6 && len(cleaned) != 8 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(cleaned[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, false
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, true
}

// IsRedText reports whether the style's text color is visually red.
func IsRedText(style *models.StyleRef) bool {
	c, ok := styleColor(style, models.PropTextColor)
	if !ok {
		return false
	}
	return c.R >= redMinR && c.G <= redMaxG && c.B <= redMaxB
}

// IsGreenFill reports whether the style's fill color is visually green.
func IsGreenFill(style *models.StyleRef) bool {
	c, ok := styleColor(style, models.PropFillColor)
	if !ok {
		return false
	}
	g, r, b := int(c.G), int(c.R), int(c.B)
	return g >= greenMinG && g >= r+greenMargin && g >= b+greenMargin
}

func styleColor(style *models.StyleRef, key string) (Color, bool) {
	v, ok := style.Property(key)
	if !ok {
		return Color{}, false
	}
	return ParseHexColor(v)
}

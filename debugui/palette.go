package debugui

import (
	"image/color"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/tetris"
)

var kindColors = [tetris.KindCount]color.RGBA{
	tetris.I: {0x31, 0xc7, 0xef, 0xff},
	tetris.O: {0xf7, 0xd3, 0x08, 0xff},
	tetris.T: {0xad, 0x4d, 0x9c, 0xff},
	tetris.S: {0x42, 0xb6, 0x42, 0xff},
	tetris.Z: {0xef, 0x20, 0x29, 0xff},
	tetris.J: {0x5a, 0x65, 0xad, 0xff},
	tetris.L: {0xef, 0x79, 0x21, 0xff},
}

// EmptyColor is used for free cells.
var EmptyColor = color.RGBA{0x20, 0x20, 0x28, 0xff}

// KindColor returns the guideline color for kind.
func KindColor(kind tetris.Kind) color.RGBA {
	if !kind.Valid() {
		return EmptyColor
	}
	return kindColors[kind]
}

// CellColor returns the color to draw c with; ghost cells are drawn at reduced alpha.
func CellColor(c tetris.Cell, ghost bool) color.RGBA {
	kind, ok := c.Kind()
	if !ok {
		return EmptyColor
	}
	col := KindColor(kind)
	if ghost {
		col.A = 0x50
	}
	return col
}

func vec4(c color.RGBA) imgui.Vec4 {
	return imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

// FormatQueue renders the upcoming kinds as a compact string, e.g. "T S Z".
func FormatQueue(next []tetris.Kind) string {
	names := make([]string, len(next))
	for i, k := range next {
		names[i] = k.String()
	}
	return strings.Join(names, " ")
}

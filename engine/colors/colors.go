package colors

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{0, 0, 0, 0}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// PackRGBA8 packs the color into 0xAABBGGRR, the layout draw-list vertices
// carry. Components are clamped to [0, 1] before quantizing.
func (c Color) PackRGBA8() uint32 {
	return uint32(quantize(c[0])) |
		uint32(quantize(c[1]))<<8 |
		uint32(quantize(c[2]))<<16 |
		uint32(quantize(c[3]))<<24
}

// UnpackRGBA8 is the inverse of PackRGBA8.
func UnpackRGBA8(packed uint32) Color {
	return Color{
		float32(packed&0xff) / 255,
		float32(packed>>8&0xff) / 255,
		float32(packed>>16&0xff) / 255,
		float32(packed>>24&0xff) / 255,
	}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package scene

import "image/color"

// Palette holds the colors a scene renders with.
type Palette struct {
	Background color.Color
	EntityFill color.Color
	EntityLine color.Color
	TitleText  color.Color
	EntryText  color.Color
	Connection color.Color
}

// DarkPalette is the default theme.
func DarkPalette() Palette {
	return Palette{
		Background: color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		EntityFill: color.RGBA{0x2a, 0x2a, 0x3c, 0xff},
		EntityLine: color.RGBA{0x89, 0xb4, 0xfa, 0xff},
		TitleText:  color.RGBA{0xcd, 0xd6, 0xf4, 0xff},
		EntryText:  color.RGBA{0xa6, 0xad, 0xc8, 0xff},
		Connection: color.RGBA{0x94, 0xe2, 0xd5, 0xff},
	}
}

// LightPalette is a print-friendly theme used by PNG export.
func LightPalette() Palette {
	return Palette{
		Background: color.White,
		EntityFill: color.RGBA{0xf5, 0xf5, 0xf5, 0xff},
		EntityLine: color.Black,
		TitleText:  color.Black,
		EntryText:  color.RGBA{0x40, 0x40, 0x40, 0xff},
		Connection: color.RGBA{0x20, 0x60, 0xa0, 0xff},
	}
}

package scene

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas is a grid of printable ASCII glyphs, one cell per character
// starting at FirstRune.
type Atlas struct {
	Image        *image.RGBA
	CellW, CellH int
	Cols, Rows   int
}

const (
	FirstRune = ' '
	LastRune  = '~'
)

// NewAtlas rasterizes basicfont's 7x13 face into a white-on-transparent
// atlas.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height
	n := int(LastRune-FirstRune) + 1
	cols := 16
	rows := (n + cols - 1) / cols

	img := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i := 0; i < n; i++ {
		col, row := i%cols, i/cols
		d.Dot = fixed.P(col*cellW, row*cellH+face.Ascent)
		d.DrawString(string(rune(FirstRune + rune(i))))
	}
	return &Atlas{Image: img, CellW: cellW, CellH: cellH, Cols: cols, Rows: rows}
}

// Cell returns the UV rectangle for ch, or false for runes outside the
// atlas.
func (a *Atlas) Cell(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < FirstRune || ch > LastRune {
		return 0, 0, 0, 0, false
	}
	i := int(ch - FirstRune)
	col, row := i%a.Cols, i/a.Cols
	w := float32(a.Image.Bounds().Dx())
	h := float32(a.Image.Bounds().Dy())
	u0 = float32(col*a.CellW) / w
	v0 = float32(row*a.CellH) / h
	u1 = float32((col+1)*a.CellW) / w
	v1 = float32((row+1)*a.CellH) / h
	return u0, v0, u1, v1, true
}

// TextWidth returns the pixel width of the widest line at scale.
func (a *Atlas) TextWidth(text string, scale float32) int {
	lineLen, maxLen := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			maxLen = max(maxLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLen = max(maxLen, lineLen)
	return int(float32(maxLen*a.CellW) * scale)
}

package face

import (
	"tinygo.org/x/tinyfont"

	"wristcode-go/gfx"
	"wristcode-go/x/strconvx"
)

// textTile renders one centered line at 1x into the scratch canvas, then
// block-scales it up and writes the whole patch. Rendering small and
// scaling keeps font tables tiny and gives every size the same chunky
// pixel look.
func (f *Face) textTile(r gfx.Rect, scale int16, font tinyfont.Fonter, text string, fg, bg uint16) error {
	f.tile.Resize(r.W/scale, r.H/scale)
	f.tile.Fill(bg)
	tw, th := f.tile.Size()
	_, w := tinyfont.LineWidth(font, text)
	x := (tw - int16(w)) / 2
	if x < 0 {
		x = 0
	}
	base := th/2 + int16(font.GetYAdvance())/3
	tinyfont.WriteLine(&f.tile, font, x, base, text, gfx.ToColor(fg))
	f.scaled = f.tile.ScaleTo(f.scaled, scale)
	return f.fb.Write(r, f.scaled)
}

// pad2 renders 0..99 as two digits.
func pad2(n int) string {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return "0" + strconvx.Itoa(n)
	}
	return strconvx.Itoa(n)
}

// roundInt rounds half away from zero; temperatures go negative.
func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

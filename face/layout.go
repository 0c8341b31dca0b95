package face

import "wristcode-go/gfx"

// Patch geometry for the 410x502 panel. Every text patch has W and H
// divisible by its blit scale so the scaled tile covers it exactly.

// Status strip, shared by all views, drawn at 1x.
var (
	rectBadge   = gfx.Rect{X: 10, Y: 12, W: 40, H: 18}
	rectSyncDot = gfx.Rect{X: 386, Y: 14, W: 12, H: 12}
)

// Clock view.
var (
	rectTime    = gfx.Rect{X: 25, Y: 120, W: 360, H: 110} // scale 5
	rectSeconds = gfx.Rect{X: 165, Y: 250, W: 80, H: 30}  // scale 2
	rectDate    = gfx.Rect{X: 55, Y: 300, W: 300, H: 36}  // scale 2
)

// Weather view.
var (
	rectWxTemp  = gfx.Rect{X: 65, Y: 120, W: 280, H: 88}  // scale 4
	rectWxLabel = gfx.Rect{X: 25, Y: 230, W: 360, H: 36}  // scale 2
	rectWxRange = gfx.Rect{X: 55, Y: 290, W: 300, H: 36}  // scale 2
	rectWxMet   = gfx.Rect{X: 45, Y: 340, W: 320, H: 36}  // scale 2
)

// Info view.
var (
	rectInfoTitle = gfx.Rect{X: 55, Y: 80, W: 300, H: 36} // scale 2
	rectInfoLines = [4]gfx.Rect{
		{X: 35, Y: 170, W: 340, H: 36},
		{X: 35, Y: 226, W: 340, H: 36},
		{X: 35, Y: 282, W: 340, H: 36},
		{X: 35, Y: 338, W: 340, H: 36},
	}
)

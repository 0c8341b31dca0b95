package co5300

// Command set (MIPI DCS subset plus vendor extensions). The controller is
// write-only on the single-lane link.
const (
	cmdSleepIn    = 0x10 // SLPIN
	cmdSleepOut   = 0x11 // SLPOUT
	cmdInvertOff  = 0x20 // INVOFF
	cmdInvertOn   = 0x21 // INVON
	cmdDisplayOff = 0x28 // DISPOFF
	cmdDisplayOn  = 0x29 // DISPON
	cmdColumnSet  = 0x2A // CASET
	cmdRowSet     = 0x2B // RASET
	cmdMemWrite   = 0x2C // RAMWR
	cmdMADCtl     = 0x36 // MADCTL
	cmdPixelFmt   = 0x3A // COLMOD
	cmdUserCmdSet = 0xFE // command-set page select
	cmdSPIMode    = 0xC4 // SPI interface mode
	cmdBrightness = 0x51 // WRDISBV
	cmdCtrlD1     = 0x53 // WRCTRLD
	cmdColorEnh   = 0x58 // WRCE
	cmdHBMBright  = 0x63 // high-brightness-mode level
)

const (
	pixelFmt16bpp = 0x55 // RGB565
	spiModeSingle = 0x80 // single data lane
	ctrlD1Dimming = 0x20 // brightness-control enable
)

// Single-lane transactions are framed as [opWrite 0x00 cmd 0x00 data...]
// with chip select held through the whole frame.
const opWrite = 0x02

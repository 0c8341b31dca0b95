package ft3168

// Register map. P1/P2 blocks are 6 bytes apart; only two points exist.
const (
	regDeviceMode = 0x00 // W, 0x00 = normal operating mode
	regGestureID  = 0x01 // R
	regTDStatus   = 0x02 // R, touch count in [3:0]
	regP1XH       = 0x03 // R, [7:6] event, [3:0] X high nibble
	regP1XL       = 0x04 // R
	regP1YH       = 0x05 // R, [3:0] Y high nibble
	regP1YL       = 0x06 // R

	regThreshold = 0x80 // W, touch detect threshold
	regChipID    = 0xA3 // R
	regIRQMode   = 0xA4 // W, 0x00 = polling
	regPowerMode = 0xA5 // W
	regVendorID  = 0xA8 // R
)

// Event bits in P1_XH[7:6].
const (
	evPressDown = 0x0
	evLiftUp    = 0x1
	evContact   = 0x2
	evNone      = 0x3
)

const defaultThreshold = 22

package pcf85063

// Register map. Time/date registers are BCD and auto-increment, so one
// burst from regSeconds covers the whole calendar.
const (
	regCtrl1   = 0x00 // R/W
	regCtrl2   = 0x01 // R/W
	regOffset  = 0x02 // R/W, crystal aging trim
	regSeconds = 0x04 // R/W, bit7 = oscillator-stop flag
	regMinutes = 0x05 // R/W
	regHours   = 0x06 // R/W
	regDays    = 0x07 // R/W
	regWeekday = 0x08 // R/W, 0=Sunday
	regMonths  = 0x09 // R/W
	regYears   = 0x0A // R/W, 00-99 from year 2000
)

const (
	ctrl1SoftReset = 0x58
	secondsOSFlag  = 0x80
)

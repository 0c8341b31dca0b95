package axp2101

// Register map (subset for watch use).
const (
	regStatus1 = 0x00 // R, system status
	regStatus2 = 0x01 // R, charge status
	regICType  = 0x03 // R, chip ID

	regPwrOffEn = 0x10 // R/W
	regPwrOnSrc = 0x20 // R

	regADCEnable = 0x30 // R/W
	regVBatH     = 0x34 // R, battery voltage high byte
	regVBatL     = 0x35 // R
	regTSH       = 0x36 // R, temperature sensor
	regTSL       = 0x37 // R
	regVBusH     = 0x38 // R, VBUS voltage
	regVBusL     = 0x39 // R
	regVSysH     = 0x3A // R, system rail voltage
	regVSysL     = 0x3B // R

	regIRQEn0     = 0x40 // R/W
	regIRQEn1     = 0x41 // R/W
	regIRQEn2     = 0x42 // R/W
	regIRQStatus0 = 0x48 // R/W1C
	regIRQStatus1 = 0x49 // R/W1C
	regIRQStatus2 = 0x4A // R/W1C

	regChgCurrent = 0x61 // R/W
	regChgControl = 0x62 // R/W, bit0 charge enable
	regChgVTerm   = 0x64 // R/W

	regDCDCOnOff = 0x80 // R/W, bits 0-4 = DCDC1-5
	regLDOOnOff0 = 0x90 // R/W

	regBatPercent = 0xA4 // R, battery level, low 7 bits
)

const (
	chipID = 0x4B

	status1VBusPresent = 0x20
	status1BatPresent  = 0x08
	status2ChargeBits  = 0x60

	adcEnableVBatTS = 0x03
)

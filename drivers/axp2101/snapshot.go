package axp2101

// Snapshot collects the telemetry the watch face and telemetry topics
// consume. Zero values remain where individual reads fail.
type Snapshot struct {
	Percent        uint8
	Battery_mV     int32
	VBus_mV        int32
	Charging       bool
	VBusPresent    bool
	BatteryPresent bool
}

func (d *Device) Snapshot() Snapshot {
	var s Snapshot
	d.SnapshotInto(&s)
	return s
}

func (d *Device) SnapshotInto(out *Snapshot) {
	var s Snapshot
	if v, e := d.BatteryPercent(); e == nil {
		s.Percent = v
	}
	if v, e := d.BatteryMilliV(); e == nil {
		s.Battery_mV = v
	}
	if v, e := d.VBusMilliV(); e == nil {
		s.VBus_mV = v
	}
	if v, e := d.Charging(); e == nil {
		s.Charging = v
	}
	if v, e := d.VBusPresent(); e == nil {
		s.VBusPresent = v
	}
	if v, e := d.BatteryPresent(); e == nil {
		s.BatteryPresent = v
	}
	*out = s
}

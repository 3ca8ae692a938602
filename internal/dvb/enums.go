// SPDX-License-Identifier: MIT

package dvb

import "strconv"

// boundedEnum is satisfied by every wire enumeration in this package.
// MaxValue reports the largest value the line format accepts.
type boundedEnum interface {
	~uint8
	MaxValue() int
	String() string
}

// DeliverySystem is the transponder discriminator written at the start of a line.
type DeliverySystem uint8

const (
	DeliveryCable       DeliverySystem = 0
	DeliverySatellite   DeliverySystem = 1
	DeliveryTerrestrial DeliverySystem = 2
	DeliveryAtsc        DeliverySystem = 3

	DeliverySystemMax = DeliveryAtsc
)

func (d DeliverySystem) MaxValue() int { return int(DeliverySystemMax) }

func (d DeliverySystem) String() string {
	switch d {
	case DeliveryCable:
		return "DVB-C"
	case DeliverySatellite:
		return "DVB-S"
	case DeliveryTerrestrial:
		return "DVB-T"
	case DeliveryAtsc:
		return "ATSC"
	}
	return unknown(d)
}

// FecRate is the forward error correction code rate.
type FecRate uint8

const (
	FecNone FecRate = 0
	Fec1_2  FecRate = 1
	Fec2_3  FecRate = 2
	Fec3_4  FecRate = 3
	Fec4_5  FecRate = 4
	Fec5_6  FecRate = 5
	Fec6_7  FecRate = 6
	Fec7_8  FecRate = 7
	Fec8_9  FecRate = 8
	FecAuto FecRate = 9

	FecRateMax = FecAuto
)

var fecRateNames = [...]string{"none", "1/2", "2/3", "3/4", "4/5", "5/6", "6/7", "7/8", "8/9", "auto"}

func (f FecRate) MaxValue() int { return int(FecRateMax) }

func (f FecRate) String() string {
	if int(f) < len(fecRateNames) {
		return fecRateNames[f]
	}
	return unknown(f)
}

// CableModulation is the DVB-C constellation.
type CableModulation uint8

const (
	CableQam16          CableModulation = 0
	CableQam32          CableModulation = 1
	CableQam64          CableModulation = 2
	CableQam128         CableModulation = 3
	CableQam256         CableModulation = 4
	CableModulationAuto CableModulation = 5

	CableModulationMax = CableModulationAuto
)

var cableModulationNames = [...]string{"QAM16", "QAM32", "QAM64", "QAM128", "QAM256", "auto"}

func (m CableModulation) MaxValue() int { return int(CableModulationMax) }

func (m CableModulation) String() string {
	if int(m) < len(cableModulationNames) {
		return cableModulationNames[m]
	}
	return unknown(m)
}

// Polarization of a satellite carrier.
type Polarization uint8

const (
	Horizontal    Polarization = 0
	Vertical      Polarization = 1
	CircularLeft  Polarization = 2
	CircularRight Polarization = 3

	PolarizationMax = CircularRight
)

var polarizationNames = [...]string{"H", "V", "L", "R"}

func (p Polarization) MaxValue() int { return int(PolarizationMax) }

func (p Polarization) String() string {
	if int(p) < len(polarizationNames) {
		return polarizationNames[p]
	}
	return unknown(p)
}

// Bandwidth of a DVB-T channel.
type Bandwidth uint8

const (
	Bandwidth6MHz Bandwidth = 0
	Bandwidth7MHz Bandwidth = 1
	Bandwidth8MHz Bandwidth = 2
	BandwidthAuto Bandwidth = 3

	BandwidthMax = BandwidthAuto
)

var bandwidthNames = [...]string{"6MHz", "7MHz", "8MHz", "auto"}

func (b Bandwidth) MaxValue() int { return int(BandwidthMax) }

func (b Bandwidth) String() string {
	if int(b) < len(bandwidthNames) {
		return bandwidthNames[b]
	}
	return unknown(b)
}

// TerrestrialModulation is the DVB-T constellation.
type TerrestrialModulation uint8

const (
	TerrestrialQpsk           TerrestrialModulation = 0
	TerrestrialQam16          TerrestrialModulation = 1
	TerrestrialQam64          TerrestrialModulation = 2
	TerrestrialModulationAuto TerrestrialModulation = 3

	TerrestrialModulationMax = TerrestrialModulationAuto
)

var terrestrialModulationNames = [...]string{"QPSK", "QAM16", "QAM64", "auto"}

func (m TerrestrialModulation) MaxValue() int { return int(TerrestrialModulationMax) }

func (m TerrestrialModulation) String() string {
	if int(m) < len(terrestrialModulationNames) {
		return terrestrialModulationNames[m]
	}
	return unknown(m)
}

// TransmissionMode is the DVB-T FFT size.
type TransmissionMode uint8

const (
	TransmissionMode2k   TransmissionMode = 0
	TransmissionMode8k   TransmissionMode = 1
	TransmissionModeAuto TransmissionMode = 2

	TransmissionModeMax = TransmissionModeAuto
)

var transmissionModeNames = [...]string{"2k", "8k", "auto"}

func (m TransmissionMode) MaxValue() int { return int(TransmissionModeMax) }

func (m TransmissionMode) String() string {
	if int(m) < len(transmissionModeNames) {
		return transmissionModeNames[m]
	}
	return unknown(m)
}

// GuardInterval is the DVB-T guard interval as a fraction of the symbol time.
type GuardInterval uint8

const (
	GuardInterval1_4  GuardInterval = 0
	GuardInterval1_8  GuardInterval = 1
	GuardInterval1_16 GuardInterval = 2
	GuardInterval1_32 GuardInterval = 3
	GuardIntervalAuto GuardInterval = 4

	GuardIntervalMax = GuardIntervalAuto
)

var guardIntervalNames = [...]string{"1/4", "1/8", "1/16", "1/32", "auto"}

func (g GuardInterval) MaxValue() int { return int(GuardIntervalMax) }

func (g GuardInterval) String() string {
	if int(g) < len(guardIntervalNames) {
		return guardIntervalNames[g]
	}
	return unknown(g)
}

// Hierarchy is the DVB-T hierarchical modulation alpha.
type Hierarchy uint8

const (
	HierarchyNone Hierarchy = 0
	Hierarchy1    Hierarchy = 1
	Hierarchy2    Hierarchy = 2
	Hierarchy4    Hierarchy = 3
	HierarchyAuto Hierarchy = 4

	HierarchyMax = HierarchyAuto
)

var hierarchyNames = [...]string{"none", "1", "2", "4", "auto"}

func (h Hierarchy) MaxValue() int { return int(HierarchyMax) }

func (h Hierarchy) String() string {
	if int(h) < len(hierarchyNames) {
		return hierarchyNames[h]
	}
	return unknown(h)
}

// AtscModulation is the ATSC (8VSB / cable QAM) constellation.
type AtscModulation uint8

const (
	AtscQam64          AtscModulation = 0
	AtscQam256         AtscModulation = 1
	AtscVsb8           AtscModulation = 2
	AtscVsb16          AtscModulation = 3
	AtscModulationAuto AtscModulation = 4

	AtscModulationMax = AtscModulationAuto
)

var atscModulationNames = [...]string{"QAM64", "QAM256", "8VSB", "16VSB", "auto"}

func (m AtscModulation) MaxValue() int { return int(AtscModulationMax) }

func (m AtscModulation) String() string {
	if int(m) < len(atscModulationNames) {
		return atscModulationNames[m]
	}
	return unknown(m)
}

func unknown[E ~uint8](v E) string {
	return "unknown(" + strconv.Itoa(int(v)) + ")"
}

// checkEnum reports whether v is within the declared range of its type.
func checkEnum[E boundedEnum](field string, v E) error {
	if int(v) > v.MaxValue() {
		return &RangeError{Field: field, Value: int(v), Max: v.MaxValue()}
	}
	return nil
}

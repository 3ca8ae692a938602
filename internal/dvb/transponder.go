// SPDX-License-Identifier: MIT

package dvb

import (
	"errors"
	"fmt"
)

// Transponder is one of CableTransponder, SatelliteTransponder,
// TerrestrialTransponder or AtscTransponder. The set is closed: the marker
// method is unexported, so a type switch over the four structs is exhaustive.
//
// Implementations are plain comparable values. Copies of a Transponder share
// the same immutable payload and compare equal with ==.
type Transponder interface {
	DeliverySystem() DeliverySystem
	Validate() error
	String() string

	transponder()
}

// CableTransponder describes a DVB-C multiplex.
type CableTransponder struct {
	Frequency  int // Hz
	SymbolRate int // symbols per second
	Modulation CableModulation
	FecRate    FecRate
}

// SatelliteTransponder describes a DVB-S multiplex.
type SatelliteTransponder struct {
	Frequency    int // kHz
	Polarization Polarization
	SymbolRate   int // symbols per second
	FecRate      FecRate
}

// TerrestrialTransponder describes a DVB-T multiplex.
type TerrestrialTransponder struct {
	Frequency        int // Hz
	Bandwidth        Bandwidth
	Modulation       TerrestrialModulation
	FecRateHigh      FecRate // high priority stream
	FecRateLow       FecRate // low priority stream
	TransmissionMode TransmissionMode
	GuardInterval    GuardInterval
	Hierarchy        Hierarchy
}

// AtscTransponder describes an ATSC multiplex.
type AtscTransponder struct {
	Frequency  int // Hz
	Modulation AtscModulation
}

func (CableTransponder) transponder()       {}
func (SatelliteTransponder) transponder()   {}
func (TerrestrialTransponder) transponder() {}
func (AtscTransponder) transponder()        {}

func (CableTransponder) DeliverySystem() DeliverySystem       { return DeliveryCable }
func (SatelliteTransponder) DeliverySystem() DeliverySystem   { return DeliverySatellite }
func (TerrestrialTransponder) DeliverySystem() DeliverySystem { return DeliveryTerrestrial }
func (AtscTransponder) DeliverySystem() DeliverySystem        { return DeliveryAtsc }

func (t CableTransponder) Validate() error {
	return errors.Join(
		checkInt32("frequency", t.Frequency),
		checkInt32("symbolRate", t.SymbolRate),
		checkEnum("modulation", t.Modulation),
		checkEnum("fecRate", t.FecRate),
	)
}

func (t SatelliteTransponder) Validate() error {
	return errors.Join(
		checkInt32("frequency", t.Frequency),
		checkInt32("symbolRate", t.SymbolRate),
		checkEnum("polarization", t.Polarization),
		checkEnum("fecRate", t.FecRate),
	)
}

func (t TerrestrialTransponder) Validate() error {
	return errors.Join(
		checkInt32("frequency", t.Frequency),
		checkEnum("bandwidth", t.Bandwidth),
		checkEnum("modulation", t.Modulation),
		checkEnum("fecRateHigh", t.FecRateHigh),
		checkEnum("fecRateLow", t.FecRateLow),
		checkEnum("transmissionMode", t.TransmissionMode),
		checkEnum("guardInterval", t.GuardInterval),
		checkEnum("hierarchy", t.Hierarchy),
	)
}

func (t AtscTransponder) Validate() error {
	return errors.Join(
		checkInt32("frequency", t.Frequency),
		checkEnum("modulation", t.Modulation),
	)
}

func (t CableTransponder) String() string {
	return fmt.Sprintf("DVB-C %s %d kS/s %s FEC %s",
		formatHz(t.Frequency), t.SymbolRate/1000, t.Modulation, t.FecRate)
}

func (t SatelliteTransponder) String() string {
	return fmt.Sprintf("DVB-S %d MHz %s %d kS/s FEC %s",
		t.Frequency/1000, t.Polarization, t.SymbolRate/1000, t.FecRate)
}

func (t TerrestrialTransponder) String() string {
	return fmt.Sprintf("DVB-T %s %s %s FEC %s/%s %s GI %s hierarchy %s",
		formatHz(t.Frequency), t.Bandwidth, t.Modulation, t.FecRateHigh, t.FecRateLow,
		t.TransmissionMode, t.GuardInterval, t.Hierarchy)
}

func (t AtscTransponder) String() string {
	return fmt.Sprintf("ATSC %s %s", formatHz(t.Frequency), t.Modulation)
}

// formatHz renders a frequency in MHz, keeping kHz precision when present.
func formatHz(hz int) string {
	if hz%1000000 == 0 {
		return fmt.Sprintf("%d MHz", hz/1000000)
	}
	return fmt.Sprintf("%.3f MHz", float64(hz)/1e6)
}

var (
	_ Transponder = CableTransponder{}
	_ Transponder = SatelliteTransponder{}
	_ Transponder = TerrestrialTransponder{}
	_ Transponder = AtscTransponder{}
)

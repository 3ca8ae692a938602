// SPDX-License-Identifier: MIT

package dvb

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoChannelFields = `"Demo" 1 "DVB-C" -1 -1 101 256 -1 -1 0`

func sampleChannels() []Channel {
	return []Channel{
		{
			Name: "Demo", Number: 1, Source: "DVB-C",
			NetworkID: Absent, TransportStreamID: Absent,
			ServiceID: 101, PmtPID: 256, VideoPID: Absent, AudioPID: Absent,
			Transponder: CableTransponder{Frequency: 498000000, SymbolRate: 6900000, Modulation: CableQam64, FecRate: Fec3_4},
		},
		{
			Name: "Das Erste HD", Number: 1, Source: "Astra 19.2E",
			NetworkID: 1, TransportStreamID: 1019, ServiceID: 10301,
			PmtPID: 5100, VideoPID: 5101, AudioPID: 5102,
			Transponder: SatelliteTransponder{Frequency: 11494000, Polarization: Horizontal, SymbolRate: 22000000, FecRate: Fec2_3},
		},
		{
			Name: `Quote "inside" and \ backslash`, Number: Absent, Source: "DVB-T Berlin",
			NetworkID: 8468, TransportStreamID: 772, ServiceID: 16385,
			PmtPID: 0, VideoPID: 0, AudioPID: 0, Scrambled: true,
			Transponder: TerrestrialTransponder{
				Frequency: 506000000, Bandwidth: Bandwidth8MHz, Modulation: TerrestrialQam16,
				FecRateHigh: Fec2_3, FecRateLow: FecAuto, TransmissionMode: TransmissionMode8k,
				GuardInterval: GuardInterval1_4, Hierarchy: HierarchyNone,
			},
		},
		{
			Name: "Tab\tand ünïcödé", Number: 7, Source: "",
			NetworkID: Absent, TransportStreamID: 1, ServiceID: 3,
			PmtPID: 48, VideoPID: 49, AudioPID: Absent,
			Transponder: AtscTransponder{Frequency: 57028615, Modulation: AtscVsb8},
		},
		{
			Name: "", Number: 0, Source: "Hotbird 13.0E",
			NetworkID: 318, TransportStreamID: 15400, ServiceID: 0,
			PmtPID: 8191, VideoPID: Absent, AudioPID: 101, Scrambled: true,
			Transponder: SatelliteTransponder{Frequency: 12597000, Polarization: CircularRight, SymbolRate: 27500000, FecRate: FecAuto},
		},
	}
}

func TestDecodeLine_CableDemo(t *testing.T) {
	line := "0 498000000 6900000 2 3 " + demoChannelFields

	got, err := DecodeLine(line)
	require.NoError(t, err)

	assert.Equal(t, 101, got.ServiceID)
	assert.Equal(t, 256, got.PmtPID)
	assert.Equal(t, Absent, got.VideoPID)
	assert.Equal(t, Absent, got.AudioPID)
	assert.False(t, got.Scrambled)
	assert.Equal(t, DeliveryCable, got.Transponder.DeliverySystem())

	cable, ok := got.Transponder.(CableTransponder)
	require.True(t, ok)
	assert.Equal(t, CableQam64, cable.Modulation)
	assert.Equal(t, Fec3_4, cable.FecRate)

	assert.Equal(t, line, EncodeLine(got))
}

func TestDecodeLine_RoundTrip(t *testing.T) {
	for _, want := range sampleChannels() {
		t.Run(want.Name, func(t *testing.T) {
			require.NoError(t, want.Validate())

			line := EncodeLine(want)
			got, err := DecodeLine(line)
			require.NoError(t, err, "line: %s", line)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, want.Equal(got))
		})
	}
}

func TestDecodeLine_SatelliteRoundTrip(t *testing.T) {
	want := Channel{
		Name: "Sat", Number: 2, Source: "DVB-S",
		NetworkID: Absent, TransportStreamID: Absent,
		ServiceID: 28006, PmtPID: 100, VideoPID: Absent, AudioPID: Absent,
		Transponder: SatelliteTransponder{Frequency: 11727000, Polarization: Vertical, SymbolRate: 27500000, FecRate: Fec5_6},
	}

	line := EncodeLine(want)
	assert.True(t, strings.HasPrefix(line, "1 11727000 1 27500000 5 "), line)

	got, err := DecodeLine(line)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeLine_SentinelPreserved(t *testing.T) {
	c := sampleChannels()[0]
	c.VideoPID = Absent
	c.AudioPID = 0

	got, err := DecodeLine(EncodeLine(c))
	require.NoError(t, err)
	assert.Equal(t, Absent, got.VideoPID)
	assert.Equal(t, 0, got.AudioPID)
}

func TestDecodeLine_Whitespace(t *testing.T) {
	got, err := DecodeLine("  0\t498000000  6900000 2 3\t\"Demo\" 1 \"DVB-C\" -1 -1 101 256 -1 -1 0  ")
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Name)
}

// enumCase points at one enumerated token of a base line.
type enumCase struct {
	name  string
	base  []string
	index int
	max   int
}

func enumCases() []enumCase {
	cable := []string{"0", "498000000", "6900000", "2", "3"}
	sat := []string{"1", "11727000", "1", "27500000", "5"}
	terr := []string{"2", "506000000", "2", "2", "3", "1", "1", "1", "0"}
	atsc := []string{"3", "57000000", "2"}

	return []enumCase{
		{"deliverySystem", atsc, 0, int(DeliverySystemMax)},
		{"cable modulation", cable, 3, int(CableModulationMax)},
		{"cable fecRate", cable, 4, int(FecRateMax)},
		{"satellite polarization", sat, 2, int(PolarizationMax)},
		{"satellite fecRate", sat, 4, int(FecRateMax)},
		{"terrestrial bandwidth", terr, 2, int(BandwidthMax)},
		{"terrestrial modulation", terr, 3, int(TerrestrialModulationMax)},
		{"terrestrial fecRateHigh", terr, 4, int(FecRateMax)},
		{"terrestrial fecRateLow", terr, 5, int(FecRateMax)},
		{"terrestrial transmissionMode", terr, 6, int(TransmissionModeMax)},
		{"terrestrial guardInterval", terr, 7, int(GuardIntervalMax)},
		{"terrestrial hierarchy", terr, 8, int(HierarchyMax)},
		{"atsc modulation", atsc, 2, int(AtscModulationMax)},
	}
}

func lineWith(base []string, index, value int) string {
	tokens := append([]string(nil), base...)
	tokens[index] = strconv.Itoa(value)
	return strings.Join(tokens, " ") + " " + demoChannelFields
}

func TestDecodeLine_EnumBounds(t *testing.T) {
	for _, tc := range enumCases() {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLine(lineWith(tc.base, tc.index, tc.max))
			require.NoError(t, err, "max value must decode")

			for _, bad := range []int{tc.max + 1, -1} {
				_, err = DecodeLine(lineWith(tc.base, tc.index, bad))
				require.ErrorIs(t, err, ErrInvalidLine)
				require.ErrorIs(t, err, ErrOutOfRange)

				var le *LineError
				require.ErrorAs(t, err, &le)
				assert.Equal(t, strconv.Itoa(bad), le.Token)
			}
		})
	}
}

func TestDecodeLine_CableModulationAboveMax(t *testing.T) {
	_, err := DecodeLine("0 498000000 6900000 6 3 " + demoChannelFields)
	require.ErrorIs(t, err, ErrOutOfRange)

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "modulation", le.Field)
}

func TestDecodeLine_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  error
		field string
	}{
		{"empty", "", ErrTruncatedLine, "deliverySystem"},
		{"unknown delivery system", "7 1 2 " + demoChannelFields, ErrOutOfRange, "deliverySystem"},
		{"satellite missing fecRate", "1 11727000 1 27500000", ErrTruncatedLine, "fecRate"},
		{"missing scrambled", "0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 101 256 -1 -1", ErrTruncatedLine, "scrambled"},
		{"non numeric frequency", "0 498MHz 6900000 2 3 " + demoChannelFields, ErrMalformedToken, "frequency"},
		{"frequency overflows int32", "0 4980000000 6900000 2 3 " + demoChannelFields, ErrMalformedToken, "frequency"},
		{"unquoted name", "0 498000000 6900000 2 3 Demo 1 \"DVB-C\" -1 -1 101 256 -1 -1 0", ErrMalformedToken, "name"},
		{"unterminated name", "0 498000000 6900000 2 3 \"Demo 1 -1 -1 101 256 -1 -1 0", ErrMalformedToken, "name"},
		{"quote glued to next token", "0 498000000 6900000 2 3 \"Demo\"1 \"DVB-C\" -1 -1 101 256 -1 -1 0", ErrMalformedToken, "name"},
		{"bad escape", "0 498000000 6900000 2 3 \"De\\qmo\" 1 \"DVB-C\" -1 -1 101 256 -1 -1 0", ErrMalformedToken, "name"},
		{"serviceId absent", "0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 -1 256 -1 -1 0", ErrOutOfRange, "serviceId"},
		{"pmtPid absent", "0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 101 -1 -1 -1 0", ErrOutOfRange, "pmtPid"},
		{"videoPid below sentinel", "0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 101 256 -2 -1 0", ErrOutOfRange, "videoPid"},
		{"scrambled not boolean", "0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 101 256 -1 -1 2", ErrOutOfRange, "scrambled"},
		{"trailing token", "0 498000000 6900000 2 3 " + demoChannelFields + " extra", ErrMalformedToken, "end of line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLine))
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, Channel{}, got)

			var le *LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.field, le.Field)
		})
	}
}

func TestDecodeLine_StickyInvalidity(t *testing.T) {
	// Only the first field is bad; every later token is well formed.
	_, err := DecodeLine("x 498000000 6900000 2 3 " + demoChannelFields)

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "deliverySystem", le.Field)
	assert.Equal(t, "x", le.Token)
	assert.Equal(t, 0, le.Offset)

	// A late failure is reported even though everything before it parsed.
	_, err = DecodeLine("0 498000000 6900000 2 3 \"Demo\" 1 \"DVB-C\" -1 -1 101 256 -1 -1 yes")
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "scrambled", le.Field)
}

func TestDecodeLine_SharedMultiplex(t *testing.T) {
	a, err := DecodeLine(`1 11727000 1 27500000 5 "One" 1 "S19.2E" 1 1079 28006 100 101 102 0`)
	require.NoError(t, err)
	b, err := DecodeLine(`1 11727000 1 27500000 5 "Two" 2 "S19.2E" 1 1079 28007 200 201 202 0`)
	require.NoError(t, err)

	assert.True(t, a.SameMultiplex(b))
	assert.False(t, a.Equal(b))

	shared := b.WithTransponder(a.Transponder)
	assert.Equal(t, b, shared)
}

func TestEncodeLine_Quoting(t *testing.T) {
	c := sampleChannels()[0]
	c.Name = `a "b" \c`

	line := EncodeLine(c)
	assert.Contains(t, line, `"a \"b\" \\c"`)
}

func TestAppendLine_KeepsPrefix(t *testing.T) {
	c := sampleChannels()[0]
	got := AppendLine([]byte("prefix:"), c)
	assert.Equal(t, "prefix:"+EncodeLine(c), string(got))
}

func TestEncodeLine_NilTransponderPanics(t *testing.T) {
	assert.Panics(t, func() {
		EncodeLine(Channel{Name: "x"})
	})
}

func TestTransponderLine(t *testing.T) {
	tp := TerrestrialTransponder{Frequency: 482000000, Bandwidth: Bandwidth8MHz, Modulation: TerrestrialQam64,
		FecRateHigh: Fec3_4, FecRateLow: FecNone, TransmissionMode: TransmissionMode8k,
		GuardInterval: GuardInterval1_8, Hierarchy: HierarchyAuto}

	line := EncodeTransponder(tp)
	assert.Equal(t, "2 482000000 2 2 3 0 1 1 4", line)

	got, err := DecodeTransponder(line)
	require.NoError(t, err)
	assert.Equal(t, Transponder(tp), got)

	_, err = DecodeTransponder(line + " 1")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidate_MatchesDecodableRange(t *testing.T) {
	tests := []struct {
		name string
		tp   Transponder
	}{
		{"cable frequency", CableTransponder{Frequency: 3_000_000_000, SymbolRate: 6900000, Modulation: CableQam64, FecRate: Fec3_4}},
		{"cable symbol rate", CableTransponder{Frequency: 498000000, SymbolRate: math.MaxInt32 + 1}},
		{"satellite frequency", SatelliteTransponder{Frequency: math.MinInt32 - 1}},
		{"terrestrial frequency", TerrestrialTransponder{Frequency: 3_000_000_000}},
		{"atsc frequency", AtscTransponder{Frequency: 3_000_000_000, Modulation: AtscVsb8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleChannels()[0].WithTransponder(tt.tp)

			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidChannel)
			var re *RangeError
			require.ErrorAs(t, err, &re)

			// The encoded form is exactly what the decoder refuses.
			_, decErr := DecodeLine(EncodeLine(c))
			assert.ErrorIs(t, decErr, ErrMalformedToken)
		})
	}

	edge := sampleChannels()[0].WithTransponder(CableTransponder{Frequency: math.MaxInt32, SymbolRate: math.MinInt32})
	require.NoError(t, edge.Validate())
	got, err := DecodeLine(EncodeLine(edge))
	require.NoError(t, err)
	assert.Equal(t, edge, got)
}

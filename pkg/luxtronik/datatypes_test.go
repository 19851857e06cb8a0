package luxtronik

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHeatpumpScaling(t *testing.T) {

	assert := assert.New(t)

	assert.Equal(42.5, fromHeatpump(Definition{Type: MeasurementCelsius}, []int32{425}))
	assert.Equal(-2.5, fromHeatpump(Definition{Type: MeasurementCelsius}, []int32{-25}))
	assert.Equal(1.5, fromHeatpump(Definition{Type: MeasurementBar}, []int32{150}))
	assert.Equal(1234.5, fromHeatpump(Definition{Type: MeasurementEnergy}, []int32{12345}))
	assert.Equal(int64(3600), fromHeatpump(Definition{Type: MeasurementSeconds}, []int32{3600}))
	assert.Equal(true, fromHeatpump(Definition{Type: MeasurementBoolean}, []int32{1}))
	assert.Equal(false, fromHeatpump(Definition{Type: MeasurementBoolean}, []int32{0}))
}

func TestFromHeatpumpFormats(t *testing.T) {

	assert := assert.New(t)

	assert.Equal("192.168.1.50", fromHeatpump(Definition{Type: MeasurementIPAddress}, []int32{-1062731470}))
	assert.Equal(time.Unix(1700000000, 0).UTC(), fromHeatpump(Definition{Type: MeasurementTimestamp}, []int32{1700000000}))
	assert.Equal(time.Time{}, fromHeatpump(Definition{Type: MeasurementTimestamp}, []int32{0}))
	assert.Equal("V3.8", fromHeatpump(Definition{Type: MeasurementVersion}, []int32{'V', '3', '.', '8', 0, 0}))
	assert.Equal("Party", fromHeatpump(Definition{Type: MeasurementSelection, Labels: heatingModeLabels}, []int32{2}))
	assert.Equal("unknown(42)", fromHeatpump(Definition{Type: MeasurementSelection, Labels: heatingModeLabels}, []int32{42}))
}

func TestToHeatpump(t *testing.T) {

	require := require.New(t)

	raw, err := toHeatpump(Definition{Type: MeasurementCelsius}, "48.5")
	require.NoError(err)
	require.Equal(int32(485), raw)

	raw, err = toHeatpump(Definition{Type: MeasurementSelection, Labels: heatingModeLabels}, "party")
	require.NoError(err)
	require.Equal(int32(2), raw)

	raw, err = toHeatpump(Definition{Type: MeasurementSelection, Labels: heatingModeLabels}, "4")
	require.NoError(err)
	require.Equal(int32(4), raw)

	raw, err = toHeatpump(Definition{Type: MeasurementBoolean}, "on")
	require.NoError(err)
	require.Equal(int32(1), raw)

	_, err = toHeatpump(Definition{Type: MeasurementSelection, Labels: heatingModeLabels}, "9")
	require.ErrorIs(err, ErrInvalidValue)

	_, err = toHeatpump(Definition{Type: MeasurementCelsius}, "warm")
	require.ErrorIs(err, ErrInvalidValue)

	_, err = toHeatpump(Definition{Type: MeasurementIPAddress}, "10.0.0.1")
	require.ErrorIs(err, ErrInvalidValue)

	for _, value := range []string{"NaN", "nan", "Inf", "-Inf"} {
		_, err = toHeatpump(parameterDefinitions[2], value)
		require.ErrorIs(err, ErrInvalidValue, value)
		_, err = toHeatpump(Definition{Type: MeasurementPercent}, value)
		require.ErrorIs(err, ErrInvalidValue, value)
	}
}

func TestParseGroupLookup(t *testing.T) {

	require := require.New(t)

	raw := make([]int32, 20)
	raw[10] = 425
	group := parseGroup(GROUP_CALCULATIONS, calculationDefinitions, raw)

	require.Equal(20, group.Len())

	byIndex, ok := group.Get("10")
	require.True(ok)
	byName, ok := group.Get("ID_WEB_Temperatur_TVL")
	require.True(ok)
	require.Same(byIndex, byName)
	require.Equal(42.5, byIndex.Value)

	unknown, ok := group.Get("5")
	require.True(ok)
	require.Equal("Unknown_Calculations_5", unknown.Name)
	require.Equal(MeasurementUnknown, unknown.Type)

	_, ok = group.Get("20")
	require.False(ok)
	_, ok = group.Get("-1")
	require.False(ok)
	_, ok = group.Get("ID_Does_Not_Exist")
	require.False(ok)

	var nilGroup *Group
	_, ok = nilGroup.Get("10")
	require.False(ok)
}

func TestParseGroupMultiWordVersion(t *testing.T) {

	require := require.New(t)

	raw := make([]int32, 91)
	for i, c := range "V3.91" {
		raw[81+i] = int32(c)
	}
	group := parseGroup(GROUP_CALCULATIONS, calculationDefinitions, raw)

	attr, ok := group.Get("ID_WEB_SoftStand")
	require.True(ok)
	require.Equal("V3.91", attr.Value)
	require.Equal(int32('V'), attr.Raw)
}

func TestParseGroupTruncatedVersion(t *testing.T) {

	require := require.New(t)

	// the version spans 10 words, the controller sent only two of them
	raw := make([]int32, 83)
	raw[81] = 'V'
	raw[82] = '3'
	group := parseGroup(GROUP_CALCULATIONS, calculationDefinitions, raw)

	attr, ok := group.Get("ID_WEB_SoftStand")
	require.True(ok)
	require.Equal("V3", attr.Value)

	last, ok := group.Get("82")
	require.True(ok)
	require.Equal(82, last.Index)
}

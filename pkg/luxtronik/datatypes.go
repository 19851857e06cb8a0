package luxtronik

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
	"time"
)

func parseGroup(name string, definitions map[int]Definition, raw []int32) *Group {
	group := &Group{
		name:       name,
		attributes: make([]*Attribute, len(raw)),
		byName:     make(map[string]*Attribute, len(raw)),
	}
	for i := range raw {
		def, ok := definitions[i]
		if !ok {
			def = unknownDefinition(name, i)
		}
		words := raw[i:min(i+max(def.Words, 1), len(raw))]
		attr := &Attribute{
			Group:     name,
			Index:     i,
			Name:      def.Name,
			Type:      def.Type,
			Writeable: def.Writeable,
			Raw:       raw[i],
			Value:     fromHeatpump(def, words),
			def:       def,
		}
		group.attributes[i] = attr
		if _, dup := group.byName[def.Name]; !dup {
			group.byName[def.Name] = attr
		}
	}
	return group
}

func unknownDefinition(group string, index int) Definition {
	var title string
	if group != "" {
		title = strings.ToUpper(group[:1]) + group[1:]
	}
	return Definition{
		Name: fmt.Sprintf("Unknown_%s_%d", title, index),
		Type: MeasurementUnknown,
	}
}

func fromHeatpump(def Definition, words []int32) any {
	raw := words[0]
	switch def.Type {
	case MeasurementCelsius, MeasurementKelvin, MeasurementPercent,
		MeasurementEnergy, MeasurementVoltage, MeasurementHours:
		return float64(raw) / 10
	case MeasurementBar:
		return float64(raw) / 100
	case MeasurementBoolean:
		return raw != 0
	case MeasurementTimestamp:
		if raw <= 0 {
			return time.Time{}
		}
		return time.Unix(int64(raw), 0).UTC()
	case MeasurementIPAddress:
		v := uint32(raw)
		return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v)).String()
	case MeasurementVersion:
		var sb strings.Builder
		for _, w := range words {
			if w > 0 && w < 128 {
				sb.WriteByte(byte(w))
			}
		}
		return strings.TrimSpace(sb.String())
	case MeasurementCharacter:
		if raw <= 0 || raw > math.MaxUint8 {
			return ""
		}
		return string(rune(raw))
	case MeasurementSelection:
		if label, ok := def.Labels[raw]; ok {
			return label
		}
		return fmt.Sprintf("unknown(%d)", raw)
	default:
		return int64(raw)
	}
}

// toHeatpump converts a user supplied value to the raw word of def.
func toHeatpump(def Definition, value string) (int32, error) {
	value = strings.TrimSpace(value)
	switch def.Type {
	case MeasurementCelsius, MeasurementKelvin, MeasurementPercent,
		MeasurementEnergy, MeasurementVoltage, MeasurementHours:
		return scaleToRaw(value, 10)
	case MeasurementBar:
		return scaleToRaw(value, 100)
	case MeasurementBoolean:
		switch strings.ToLower(value) {
		case "1", "on", "true":
			return 1, nil
		case "0", "off", "false":
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
	case MeasurementSelection:
		for code, label := range def.Labels {
			if strings.EqualFold(label, value) {
				return code, nil
			}
		}
		code, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an option of %s", ErrInvalidValue, value, def.Name)
		}
		if _, ok := def.Labels[int32(code)]; !ok {
			return 0, fmt.Errorf("%w: %d is not an option of %s", ErrInvalidValue, code, def.Name)
		}
		return int32(code), nil
	case MeasurementTimestamp, MeasurementIPAddress, MeasurementVersion, MeasurementCharacter:
		return 0, fmt.Errorf("%w: %s values cannot be written", ErrInvalidValue, def.Type)
	default:
		return scaleToRaw(value, 1)
	}
}

func scaleToRaw(value string, factor float64) (int32, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidValue, value)
	}
	scaled := math.Round(f * factor)
	if scaled > math.MaxInt32 || scaled < math.MinInt32 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidValue, value)
	}
	return int32(scaled), nil
}

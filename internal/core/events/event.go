package events

import (
	"fmt"
	"time"

	. "github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/core/entity"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"
)

// EntitiesToUpdateEvents builds one update event per entity from the current
// snapshot. Entities whose attribute vanished are skipped.
func EntitiesToUpdateEvents(entities []entity.Entity) []any {
	var events []any
	for _, e := range entities {
		if ev, ok := EntityToUpdateEvent(e); ok {
			events = append(events, ev)
		}
	}
	return events
}

func EntityToUpdateEvent(e entity.Entity) (any, bool) {
	mixIn := SensorUpdateEventMixIn{Id: e.Identity()}
	switch s := e.(type) {
	case *entity.BinarySensorEntity:
		return BinarySensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  s.IsOn(),
		}, true
	case *entity.SensorEntity:
		return sensorValueToUpdateEvent(mixIn, s.MeasurementType(), s.DisplayValue())
	}
	return nil, false
}

func sensorValueToUpdateEvent(mixIn SensorUpdateEventMixIn, mt luxtronik.MeasurementType, value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case float64:
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  v,
			Decimals:               decimalsFor(mt),
		}, true
	case int64:
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  float64(v),
		}, true
	case bool:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  onOff(v),
		}, true
	case time.Time:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  v.UTC().Format(time.RFC3339),
		}, true
	case string:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  v,
		}, true
	default:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: mixIn,
			Value:                  fmt.Sprint(v),
		}, true
	}
}

func decimalsFor(mt luxtronik.MeasurementType) uint {
	switch mt {
	case luxtronik.MeasurementBar:
		return 2
	case luxtronik.MeasurementCelsius, luxtronik.MeasurementKelvin,
		luxtronik.MeasurementPercent, luxtronik.MeasurementEnergy,
		luxtronik.MeasurementVoltage, luxtronik.MeasurementHours:
		return 1
	default:
		return 0
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func BridgeStateToUpdateEvent(online bool) any {
	return BridgeStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BRIDGE_STATE,
		},
		Value: online,
	}
}

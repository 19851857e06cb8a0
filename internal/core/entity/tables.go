package entity

import "github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

const (
	CLASS_PRESSURE      = "pressure"
	CLASS_TIMESTAMP     = "timestamp"
	CLASS_SENSOR        = "sensor"
	CLASS_BINARY_SENSOR = "binary_sensor"

	ICON_BINARY_ON  = "mdi:check-circle-outline"
	ICON_BINARY_OFF = "mdi:circle-outline"
)

var icons = map[luxtronik.MeasurementType]string{
	luxtronik.MeasurementCelsius:   "mdi:thermometer",
	luxtronik.MeasurementSeconds:   "mdi:timer-sand",
	luxtronik.MeasurementPulses:    "mdi:pulse",
	luxtronik.MeasurementIPAddress: "mdi:ip-network-outline",
	luxtronik.MeasurementTimestamp: "mdi:calendar-range",
	luxtronik.MeasurementErrorCode: "mdi:alert-circle-outline",
	luxtronik.MeasurementKelvin:    "mdi:thermometer",
	luxtronik.MeasurementBar:       "mdi:arrow-collapse-all",
	luxtronik.MeasurementPercent:   "mdi:percent",
	luxtronik.MeasurementRPM:       "mdi:rotate-right",
	luxtronik.MeasurementEnergy:    "mdi:flash-circle",
	luxtronik.MeasurementVoltage:   "mdi:flash-outline",
	luxtronik.MeasurementHours:     "mdi:clock-outline",
	luxtronik.MeasurementFlow:      "mdi:chart-bell-curve",
	luxtronik.MeasurementLevel:     "mdi:format-list-numbered",
	luxtronik.MeasurementCount:     "mdi:counter",
	luxtronik.MeasurementVersion:   "mdi:information-outline",
}

var units = map[luxtronik.MeasurementType]string{
	luxtronik.MeasurementCelsius: "°C",
	luxtronik.MeasurementSeconds: "s",
	luxtronik.MeasurementKelvin:  "K",
	luxtronik.MeasurementBar:     "bar",
	luxtronik.MeasurementPercent: "%",
	luxtronik.MeasurementEnergy:  "kWh",
	luxtronik.MeasurementVoltage: "V",
	luxtronik.MeasurementHours:   "h",
	luxtronik.MeasurementFlow:    "l/min",
}

// celsius and kelvin are classified as pressure as well.
var classifications = map[luxtronik.MeasurementType]string{
	luxtronik.MeasurementCelsius:   CLASS_PRESSURE,
	luxtronik.MeasurementKelvin:    CLASS_PRESSURE,
	luxtronik.MeasurementBar:       CLASS_PRESSURE,
	luxtronik.MeasurementSeconds:   CLASS_TIMESTAMP,
	luxtronik.MeasurementHours:     CLASS_TIMESTAMP,
	luxtronik.MeasurementTimestamp: CLASS_TIMESTAMP,
}

// IconFor returns the default icon of a measurement type, or "" when there is none.
func IconFor(t luxtronik.MeasurementType) string {
	return icons[t]
}

func UnitFor(t luxtronik.MeasurementType) string {
	return units[t]
}

func ClassificationFor(t luxtronik.MeasurementType) string {
	if class, ok := classifications[t]; ok {
		return class
	}
	return CLASS_SENSOR
}

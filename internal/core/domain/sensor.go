package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"
	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE       = "bridge"
	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"
	DEVICE_CLASS_DURATION        = "duration"
	DEVICE_CLASS_ENERGY          = "energy"
	DEVICE_CLASS_PRESSURE        = "pressure"
	DEVICE_CLASS_TEMPERATURE     = "temperature"
	DEVICE_CLASS_VOLTAGE         = "voltage"
	DEVICE_CLASS_CONNECTIVITY    = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC      = "diagnostic"
	ENTITY_CLASS_CONFIG          = "config"
	SENSOR_TYPE_SENSOR           = "sensor"
	SENSOR_TYPE_BINARY           = "binary_sensor"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("luxtronik_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "ACasal",
		Model:        "Luxtronik2MQTT",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Luxtronik2MQTT %s", md5HashShort(baseTopic)),
	}
}

// HeatpumpDevice is keyed on the controller endpoint since the controller
// exposes no serial number.
func HeatpumpDevice(info *luxtronik.HeatpumpInfo, bridge Device) Device {
	endpoint := fmt.Sprintf("%s:%d", info.Host, info.Port)
	model := info.HeatpumpType
	if model == "" {
		model = "Luxtronik 2.0"
	}
	return Device{
		Id:           fmt.Sprintf("lux_heatpump_%s", md5HashShort(endpoint)),
		Version:      info.FirmwareVersion,
		Manufacturer: "Alpha Innotec",
		Model:        model,
		Name:         fmt.Sprintf("Heatpump %s %s", model, md5HashShort(endpoint)),
		ViaDevice:    bridge.Id,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// EntitySensors describes the configured entities as discoverable sensors of
// the heatpump device.
func EntitySensors(heatpumpDevice Device, entities []EntityDescriptor) []GenericSensor {

	var sensors []GenericSensor

	for _, e := range entities {
		sensor := GenericSensor{
			Device:     heatpumpDevice,
			Id:         e.Identity,
			ObjectId:   e.Identity,
			SensorType: e.Component,
			Name:       e.Name,
			Icon:       e.Icon,
			UniqueId:   uniqueId(heatpumpDevice.Id, e.Identity),
		}
		if e.Component == SENSOR_TYPE_SENSOR {
			sensor.UnitOfMeasurement = e.Unit
			sensor.DeviceClass = deviceClassForUnit(e.Unit)
			switch sensor.DeviceClass {
			case "":
			case DEVICE_CLASS_ENERGY:
				sensor.StateClass = STATE_CLASS_TOTAL_INCREASING
			default:
				sensor.StateClass = STATE_CLASS_MEASUREMENT
			}
			if e.Group == luxtronik.GROUP_VISIBILITIES {
				sensor.EntityCategory = ENTITY_CLASS_DIAGNOSTIC
				sensor.EnabledByDefault = optionalBool(false)
			}
		}
		sensors = append(sensors, sensor)
	}

	return sensors
}

func deviceClassForUnit(unit string) string {
	switch unit {
	case "°C", "K":
		return DEVICE_CLASS_TEMPERATURE
	case "bar":
		return DEVICE_CLASS_PRESSURE
	case "kWh":
		return DEVICE_CLASS_ENERGY
	case "V":
		return DEVICE_CLASS_VOLTAGE
	case "h", "s":
		return DEVICE_CLASS_DURATION
	}
	return ""
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}

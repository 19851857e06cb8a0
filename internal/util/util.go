package util

import (
	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Luxtronik: config.LuxtronikConfig{
			Host:          "-.-.-.-",
			Port:          8889,
			Safe:          true,
			TimeoutMillis: 5000,
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "luxtronik",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 1000,
		},
		Sensors: []config.SensorConfig{
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_WEB_Temperatur_TVL", FriendlyName: "Flow Temperature"},
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_WEB_Temperatur_TA", FriendlyName: "Outside Temperature"},
		},
		BinarySensors: []config.SensorConfig{
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_WEB_EVUin", FriendlyName: "Utility lock", Invert: true},
		},
		Port: 8080,
	}
}

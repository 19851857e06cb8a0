package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Luxtronik: LuxtronikConfig{
			Host:          "192.168.1.20",
			Port:          8889,
			Safe:          true,
			TimeoutMillis: 5000,
		},
		MQTT: MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "luxtronik",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: MonitorConfig{
			PollIntervalMillis: 30000,
		},
		Sensors: []SensorConfig{
			{Group: "calculations", Id: "10", FriendlyName: "Flow Temperature", Icon: "mdi:thermometer"},
		},
		BinarySensors: []SensorConfig{
			{Group: "calculations", Id: "ID_WEB_EVUin", Invert: true},
		},
		Port: 8080,
	}
}

func TestValidConfig(t *testing.T) {

	require := require.New(t)

	v, err := NewValidator()
	require.NoError(err)
	require.NoError(v.Validate(validConfig()))
}

func TestInvalidConfig(t *testing.T) {

	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"missing host", func(c *Config) { c.Luxtronik.Host = "" }},
		{"port out of range", func(c *Config) { c.Luxtronik.Port = 70000 }},
		{"unknown group", func(c *Config) { c.Sensors[0].Group = "settings" }},
		{"empty id", func(c *Config) { c.BinarySensors[0].Id = "" }},
		{"bad icon", func(c *Config) { c.Sensors[0].Icon = "thermometer" }},
		{"poll too fast", func(c *Config) { c.MonitorConfig.PollIntervalMillis = 10 }},
		{"bad base topic", func(c *Config) { c.MQTT.BaseTopic = "lux/tronik" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			assert.Error(t, v.Validate(cfg))
		})
	}
}

func TestCheckMQTTTopic(t *testing.T) {

	assert := assert.New(t)

	topic, err := CheckMQTTTopic("LuxTronik_1")
	assert.NoError(err)
	assert.Equal("luxtronik_1", topic)

	_, err = CheckMQTTTopic("lux tronik")
	assert.Error(err)
}

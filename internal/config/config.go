package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel      zapcore.Level   `json:"-"`
	Luxtronik     LuxtronikConfig `mapstructure:"luxtronik" json:"luxtronik"`
	MQTT          MQTTConfig      `mapstructure:"mqtt" json:"mqtt"`
	MonitorConfig MonitorConfig   `mapstructure:"monitor" json:"monitor"`
	Sensors       []SensorConfig  `mapstructure:"sensors" json:"sensors"`
	BinarySensors []SensorConfig  `mapstructure:"binary_sensors" json:"binary_sensors"`
	Port          uint            `mapstructure:"port" json:"port"`
	HttpLog       bool            `mapstructure:"http_log" json:"http_log"`
}

type LuxtronikConfig struct {
	Host          string `json:"host"`
	Port          uint   `json:"port"`
	Safe          bool   `json:"safe"`
	TimeoutMillis uint32 `mapstructure:"timeout_millis" json:"timeout_millis"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis" json:"poll_interval_millis"`
	PollCron           string `mapstructure:"poll_cron" json:"poll_cron"`
}

// SensorConfig selects one attribute of the controller. Icon is ignored by
// binary sensors, Invert by sensors.
type SensorConfig struct {
	Group        string `json:"group"`
	Id           string `json:"id"`
	FriendlyName string `mapstructure:"friendly_name" json:"friendly_name,omitempty"`
	Icon         string `json:"icon,omitempty"`
	Invert       bool   `json:"invert,omitempty"`
}

type MQTTConfig struct {
	Host              string `json:"host"`
	Port              int    `json:"port"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	BaseTopic         string `mapstructure:"base_topic" json:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable" json:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic" json:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

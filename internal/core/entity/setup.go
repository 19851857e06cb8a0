package entity

import (
	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/internal/core/port"
	"go.uber.org/zap"
)

// SetupSensors builds one sensor per config whose (group, id) resolves.
// Unresolved configs are logged and skipped.
func SetupSensors(source port.AttributeSource, configs []config.SensorConfig, logger *zap.Logger) []*SensorEntity {
	var entities []*SensorEntity
	for _, cfg := range configs {
		if !resolves(source, cfg, logger) {
			continue
		}
		entities = append(entities, NewSensorEntity(source, cfg.Group, cfg.Id, cfg))
	}
	return entities
}

func SetupBinarySensors(source port.AttributeSource, configs []config.SensorConfig, logger *zap.Logger) []*BinarySensorEntity {
	var entities []*BinarySensorEntity
	for _, cfg := range configs {
		if !resolves(source, cfg, logger) {
			continue
		}
		entities = append(entities, NewBinarySensorEntity(source, cfg.Group, cfg.Id, cfg))
	}
	return entities
}

func resolves(source port.AttributeSource, cfg config.SensorConfig, logger *zap.Logger) bool {
	if _, ok := source.Lookup(cfg.Group, cfg.Id); !ok {
		logger.Warn("invalid Luxtronik ID", zap.String("id", cfg.Id), zap.String("group", cfg.Group))
		return false
	}
	return true
}

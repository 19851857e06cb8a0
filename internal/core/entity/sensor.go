package entity

import (
	"context"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/internal/core/port"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"
)

const ENTITY_ID_PREFIX = "luxtronik."

const (
	COMPONENT_SENSOR        = "sensor"
	COMPONENT_BINARY_SENSOR = "binary_sensor"
)

// Entity is the common surface of sensors and binary sensors.
type Entity interface {
	Component() string
	Group() string
	Id() string
	Identity() string
	EntityID() string
	Name() string
	Icon() string
	Unit() string
	Classification() string
	MeasurementType() luxtronik.MeasurementType
	Tick(ctx context.Context) error
}

// binding ties a sensor config to one attribute of the source. The attribute
// is looked up again on every access.
type binding struct {
	source port.AttributeSource
	group  string
	id     string
	cfg    config.SensorConfig
}

func (b binding) attribute() (*luxtronik.Attribute, bool) {
	return b.source.Lookup(b.group, b.id)
}

func (b binding) Group() string {
	return b.group
}

func (b binding) Id() string {
	return b.id
}

func (b binding) Name() string {
	if b.cfg.FriendlyName != "" {
		return b.cfg.FriendlyName
	}
	if attr, ok := b.attribute(); ok {
		return attr.Name
	}
	return b.id
}

func (b binding) Identity() string {
	return Slugify(b.Name())
}

func (b binding) EntityID() string {
	return ENTITY_ID_PREFIX + b.Identity()
}

func (b binding) MeasurementType() luxtronik.MeasurementType {
	if attr, ok := b.attribute(); ok {
		return attr.Type
	}
	return luxtronik.MeasurementUnknown
}

func (b binding) value() any {
	if attr, ok := b.attribute(); ok {
		return attr.Value
	}
	return nil
}

func (b binding) Tick(ctx context.Context) error {
	return b.source.Refresh(ctx)
}

type SensorEntity struct {
	binding
}

func NewSensorEntity(source port.AttributeSource, group string, id string, cfg config.SensorConfig) *SensorEntity {
	return &SensorEntity{binding{source: source, group: group, id: id, cfg: cfg}}
}

func (s *SensorEntity) Component() string {
	return COMPONENT_SENSOR
}

// DisplayValue is the current value of the attribute, nil if it disappeared.
func (s *SensorEntity) DisplayValue() any {
	return s.value()
}

func (s *SensorEntity) Icon() string {
	if s.cfg.Icon != "" {
		return s.cfg.Icon
	}
	return IconFor(s.MeasurementType())
}

func (s *SensorEntity) Unit() string {
	return UnitFor(s.MeasurementType())
}

func (s *SensorEntity) Classification() string {
	return ClassificationFor(s.MeasurementType())
}

type BinarySensorEntity struct {
	binding
}

// NewBinarySensorEntity keeps cfg.Icon but never uses it; the icon follows the state.
func NewBinarySensorEntity(source port.AttributeSource, group string, id string, cfg config.SensorConfig) *BinarySensorEntity {
	return &BinarySensorEntity{binding{source: source, group: group, id: id, cfg: cfg}}
}

func (s *BinarySensorEntity) Component() string {
	return COMPONENT_BINARY_SENSOR
}

func (s *BinarySensorEntity) IsOn() bool {
	on := truthy(s.value())
	if s.cfg.Invert {
		return !on
	}
	return on
}

func (s *BinarySensorEntity) Icon() string {
	if s.IsOn() {
		return ICON_BINARY_ON
	}
	return ICON_BINARY_OFF
}

func (s *BinarySensorEntity) Unit() string {
	return ""
}

func (s *BinarySensorEntity) Classification() string {
	return CLASS_BINARY_SENSOR
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int64:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case string:
		return t != ""
	case time.Time:
		return !t.IsZero()
	default:
		return true
	}
}

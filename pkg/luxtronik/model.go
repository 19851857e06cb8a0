package luxtronik

import (
	"errors"
	"strconv"
)

const (
	GROUP_PARAMETERS   = "parameters"
	GROUP_CALCULATIONS = "calculations"
	GROUP_VISIBILITIES = "visibilities"
)

var (
	ErrConnection       = errors.New("luxtronik: connection error")
	ErrProtocol         = errors.New("luxtronik: protocol error")
	ErrUnknownGroup     = errors.New("luxtronik: unknown group")
	ErrUnknownAttribute = errors.New("luxtronik: unknown attribute")
	ErrUnsafeWrite      = errors.New("luxtronik: parameter is not writeable in safe mode")
	ErrInvalidValue     = errors.New("luxtronik: invalid value")
)

// MeasurementType tags an attribute with the kind of quantity it holds.
type MeasurementType string

const (
	MeasurementCelsius   MeasurementType = "celsius"
	MeasurementKelvin    MeasurementType = "kelvin"
	MeasurementBar       MeasurementType = "bar"
	MeasurementPercent   MeasurementType = "percent"
	MeasurementRPM       MeasurementType = "rpm"
	MeasurementEnergy    MeasurementType = "energy"
	MeasurementVoltage   MeasurementType = "voltage"
	MeasurementHours     MeasurementType = "hours"
	MeasurementSeconds   MeasurementType = "seconds"
	MeasurementPulses    MeasurementType = "pulses"
	MeasurementFlow      MeasurementType = "flow"
	MeasurementLevel     MeasurementType = "level"
	MeasurementCount     MeasurementType = "count"
	MeasurementErrorCode MeasurementType = "errorcode"
	MeasurementIPAddress MeasurementType = "ipaddress"
	MeasurementTimestamp MeasurementType = "timestamp"
	MeasurementVersion   MeasurementType = "version"
	MeasurementBoolean   MeasurementType = "boolean"
	MeasurementSelection MeasurementType = "selection"
	MeasurementCharacter MeasurementType = "character"
	MeasurementUnknown   MeasurementType = "unknown"
)

// Definition describes a known attribute slot of a group.
type Definition struct {
	Name      string
	Type      MeasurementType
	Writeable bool
	// Words > 1 marks values spread over consecutive slots, like the firmware version.
	Words  int
	Labels map[int32]string
}

// Attribute is one value of a group snapshot. Attributes are never mutated
// after a read; the next read replaces the whole group.
type Attribute struct {
	Group     string
	Index     int
	Name      string
	Type      MeasurementType
	Writeable bool
	Raw       int32
	Value     any

	def Definition
}

type Group struct {
	name       string
	attributes []*Attribute
	byName     map[string]*Attribute
}

func emptyGroup(name string) *Group {
	return &Group{
		name:   name,
		byName: map[string]*Attribute{},
	}
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Len() int {
	return len(g.attributes)
}

func (g *Group) Attributes() []*Attribute {
	return g.attributes
}

// Get resolves id as a decimal index first and as an attribute name second.
func (g *Group) Get(id string) (*Attribute, bool) {
	if g == nil {
		return nil, false
	}
	if index, err := strconv.Atoi(id); err == nil {
		if index < 0 || index >= len(g.attributes) {
			return nil, false
		}
		return g.attributes[index], true
	}
	attr, ok := g.byName[id]
	return attr, ok
}

type HeatpumpInfo struct {
	Host            string
	Port            uint
	FirmwareVersion string
	HeatpumpType    string
	IPAddress       string
}

type HeatpumpReader interface {
	Open() error
	Close() error
	Read() error
	Parameters() *Group
	Calculations() *Group
	Visibilities() *Group
	Group(name string) (*Group, error)
	WriteParameter(id string, value string) error
	GetInfo() (*HeatpumpInfo, error)
}

func IsValidGroup(name string) bool {
	switch name {
	case GROUP_PARAMETERS, GROUP_CALCULATIONS, GROUP_VISIBILITIES:
		return true
	default:
		return false
	}
}

package luxtronik

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// TestHeatpumpReader serves a fixed in-memory controller image.
type TestHeatpumpReader struct {
	mu     sync.Mutex
	safe   bool
	fail   error
	params []int32
	calcs  []int32
	visis  []int32

	snapMu       sync.RWMutex
	parameters   *Group
	calculations *Group
	visibilities *Group

	reads  atomic.Int32
	writes atomic.Int32
}

func CreateTestHeatpumpReader() *TestHeatpumpReader {
	params := make([]int32, 701)
	params[1] = -5
	params[2] = 500
	params[3] = 0
	params[4] = 0
	params[108] = 1

	calcs := make([]int32, 161)
	calcs[10] = 425
	calcs[11] = 380
	calcs[12] = 375
	calcs[15] = -25
	calcs[17] = 481
	calcs[29] = 1
	calcs[39] = 1
	calcs[44] = 0
	calcs[56] = 3600
	calcs[57] = 120
	calcs[78] = 12
	calcs[80] = 0
	for i, c := range "V3.88.0" {
		calcs[81+i] = int32(c)
	}
	calcs[91] = -1062731470 // 192.168.1.50
	calcs[95] = 1700000000
	calcs[100] = 715
	calcs[151] = 12345
	calcs[155] = 1200

	visis := make([]int32, 11)
	visis[1] = 1
	visis[2] = 1
	visis[3] = 1

	return &TestHeatpumpReader{
		safe:         true,
		params:       params,
		calcs:        calcs,
		visis:        visis,
		parameters:   emptyGroup(GROUP_PARAMETERS),
		calculations: emptyGroup(GROUP_CALCULATIONS),
		visibilities: emptyGroup(GROUP_VISIBILITIES),
	}
}

func (reader *TestHeatpumpReader) Open() error {
	return nil
}

func (reader *TestHeatpumpReader) Close() error {
	return nil
}

// SetFailure makes subsequent reads fail with err until cleared with nil.
func (reader *TestHeatpumpReader) SetFailure(err error) {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.fail = err
}

func (reader *TestHeatpumpReader) SetSafe(safe bool) {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.safe = safe
}

// SetRaw changes a raw slot; the change is visible after the next Read.
func (reader *TestHeatpumpReader) SetRaw(group string, index int, raw int32) error {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	var words []int32
	switch group {
	case GROUP_PARAMETERS:
		words = reader.params
	case GROUP_CALCULATIONS:
		words = reader.calcs
	case GROUP_VISIBILITIES:
		words = reader.visis
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	if index < 0 || index >= len(words) {
		return fmt.Errorf("%w: %d in group %s", ErrUnknownAttribute, index, group)
	}
	words[index] = raw
	return nil
}

func (reader *TestHeatpumpReader) ReadCount() int {
	return int(reader.reads.Load())
}

func (reader *TestHeatpumpReader) WriteCount() int {
	return int(reader.writes.Load())
}

func (reader *TestHeatpumpReader) Read() error {
	reader.reads.Add(1)
	reader.mu.Lock()
	if reader.fail != nil {
		err := reader.fail
		reader.mu.Unlock()
		return err
	}
	parameters := parseGroup(GROUP_PARAMETERS, parameterDefinitions, reader.params)
	calculations := parseGroup(GROUP_CALCULATIONS, calculationDefinitions, reader.calcs)
	visibilities := parseGroup(GROUP_VISIBILITIES, visibilityDefinitions, reader.visis)
	reader.mu.Unlock()

	reader.snapMu.Lock()
	reader.parameters = parameters
	reader.calculations = calculations
	reader.visibilities = visibilities
	reader.snapMu.Unlock()
	return nil
}

func (reader *TestHeatpumpReader) Parameters() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.parameters
}

func (reader *TestHeatpumpReader) Calculations() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.calculations
}

func (reader *TestHeatpumpReader) Visibilities() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.visibilities
}

func (reader *TestHeatpumpReader) Group(name string) (*Group, error) {
	return selectGroup(reader, name)
}

func (reader *TestHeatpumpReader) WriteParameter(id string, value string) error {
	reader.mu.Lock()
	safe := reader.safe
	reader.mu.Unlock()
	raw, attr, err := resolveWrite(reader.Parameters(), safe, id, value)
	if err != nil {
		return err
	}
	reader.writes.Add(1)
	return reader.SetRaw(GROUP_PARAMETERS, attr.Index, raw)
}

func (reader *TestHeatpumpReader) GetInfo() (*HeatpumpInfo, error) {
	calcs := reader.Calculations()
	if calcs.Len() == 0 {
		return nil, fmt.Errorf("%w: no data read yet", ErrConnection)
	}
	info := infoFromCalculations(calcs)
	info.Host = "test"
	info.Port = 8889
	return info, nil
}

package luxtronik

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Instrument struct {
	RecordTime func(fnName string, readTime time.Duration)
}

func RecordTimer(name string, instrument []Instrument) func() {
	if instrument == nil {
		return func() {}
	}

	start := time.Now()
	return func() {
		duration := time.Since(start)
		for i := range instrument {
			instrument[i].RecordTime(name, duration)
		}
	}
}

func traceLoggerInstrumentation(logger *zap.Logger) *Instrument {
	return &Instrument{
		RecordTime: func(fnName string, readTime time.Duration) {
			logger.Debug("luxtronik call", zap.String("fn", fnName), zap.Int64("millis", readTime.Milliseconds()))
		},
	}
}

// TCPHeatpumpReader talks to a Luxtronik 2.0 controller over its native TCP protocol.
// The connection is opened lazily and dropped after any failed exchange.
type TCPHeatpumpReader struct {
	host       string
	port       uint
	timeout    time.Duration
	safe       bool
	logger     *zap.Logger
	instrument []Instrument

	ioMu sync.Mutex
	conn net.Conn

	snapMu       sync.RWMutex
	parameters   *Group
	calculations *Group
	visibilities *Group
}

func CreateHeatpumpReader(host string, port uint, timeout time.Duration, safe bool,
	logger *zap.Logger, instrumentation *Instrument) (HeatpumpReader, error) {
	if host == "" {
		return nil, fmt.Errorf("%w: empty host", ErrConnection)
	}
	if port == 0 || port > 65535 {
		return nil, fmt.Errorf("%w: invalid port %d", ErrConnection, port)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	// instrumentation
	var inst []Instrument
	logInst := traceLoggerInstrumentation(logger.With(zap.String("target", "heatpump")).With(zap.String("host", host)))
	if logInst != nil {
		inst = append(inst, *logInst)
	}
	if instrumentation != nil {
		inst = append(inst, *instrumentation)
	}
	return &TCPHeatpumpReader{
		host:         host,
		port:         port,
		timeout:      timeout,
		safe:         safe,
		logger:       logger,
		instrument:   inst,
		parameters:   emptyGroup(GROUP_PARAMETERS),
		calculations: emptyGroup(GROUP_CALCULATIONS),
		visibilities: emptyGroup(GROUP_VISIBILITIES),
	}, nil
}

func (reader *TCPHeatpumpReader) address() string {
	return net.JoinHostPort(reader.host, strconv.FormatUint(uint64(reader.port), 10))
}

func (reader *TCPHeatpumpReader) Open() error {
	reader.ioMu.Lock()
	defer reader.ioMu.Unlock()
	return reader.dial()
}

// dial must be called with ioMu held.
func (reader *TCPHeatpumpReader) dial() error {
	if reader.conn != nil {
		return nil
	}
	defer RecordTimer("Dial", reader.instrument)()
	conn, err := net.DialTimeout("tcp", reader.address(), reader.timeout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	reader.conn = conn
	return nil
}

// drop must be called with ioMu held.
func (reader *TCPHeatpumpReader) drop() {
	if reader.conn != nil {
		_ = reader.conn.Close()
		reader.conn = nil
	}
}

func (reader *TCPHeatpumpReader) Close() error {
	reader.ioMu.Lock()
	defer reader.ioMu.Unlock()
	if reader.conn == nil {
		return nil
	}
	err := reader.conn.Close()
	reader.conn = nil
	return err
}

func (reader *TCPHeatpumpReader) exchange(name string, fn func(net.Conn) error) error {
	reader.ioMu.Lock()
	defer reader.ioMu.Unlock()
	if err := reader.dial(); err != nil {
		return err
	}
	defer RecordTimer(name, reader.instrument)()
	if reader.timeout > 0 {
		_ = reader.conn.SetDeadline(time.Now().Add(reader.timeout))
	}
	if err := fn(reader.conn); err != nil {
		reader.drop()
		if errors.Is(err, ErrProtocol) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// Read fetches all three groups and replaces the snapshot only if every read succeeded.
func (reader *TCPHeatpumpReader) Read() error {
	var params, calcs, visis []int32
	err := reader.exchange("Read", func(conn net.Conn) error {
		var err error
		if params, err = readParameters(conn); err != nil {
			return err
		}
		if calcs, err = readCalculations(conn); err != nil {
			return err
		}
		visis, err = readVisibilities(conn)
		return err
	})
	if err != nil {
		return err
	}
	parameters := parseGroup(GROUP_PARAMETERS, parameterDefinitions, params)
	calculations := parseGroup(GROUP_CALCULATIONS, calculationDefinitions, calcs)
	visibilities := parseGroup(GROUP_VISIBILITIES, visibilityDefinitions, visis)

	reader.snapMu.Lock()
	reader.parameters = parameters
	reader.calculations = calculations
	reader.visibilities = visibilities
	reader.snapMu.Unlock()
	return nil
}

func (reader *TCPHeatpumpReader) Parameters() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.parameters
}

func (reader *TCPHeatpumpReader) Calculations() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.calculations
}

func (reader *TCPHeatpumpReader) Visibilities() *Group {
	reader.snapMu.RLock()
	defer reader.snapMu.RUnlock()
	return reader.visibilities
}

func (reader *TCPHeatpumpReader) Group(name string) (*Group, error) {
	return selectGroup(reader, name)
}

func selectGroup(reader HeatpumpReader, name string) (*Group, error) {
	switch name {
	case GROUP_PARAMETERS:
		return reader.Parameters(), nil
	case GROUP_CALCULATIONS:
		return reader.Calculations(), nil
	case GROUP_VISIBILITIES:
		return reader.Visibilities(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
}

// WriteParameter resolves id against the last parameters snapshot. In safe mode
// only parameters flagged as writeable are accepted.
func (reader *TCPHeatpumpReader) WriteParameter(id string, value string) error {
	raw, attr, err := resolveWrite(reader.Parameters(), reader.safe, id, value)
	if err != nil {
		return err
	}
	reader.logger.Info("writing parameter",
		zap.String("name", attr.Name), zap.Int("index", attr.Index), zap.Int32("raw", raw))
	return reader.exchange("WriteParameter", func(conn net.Conn) error {
		return writeParameter(conn, int32(attr.Index), raw)
	})
}

func resolveWrite(params *Group, safe bool, id string, value string) (int32, *Attribute, error) {
	attr, ok := params.Get(id)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s in group %s", ErrUnknownAttribute, id, GROUP_PARAMETERS)
	}
	if safe && !attr.Writeable {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnsafeWrite, attr.Name)
	}
	raw, err := toHeatpump(attr.def, value)
	if err != nil {
		return 0, nil, err
	}
	return raw, attr, nil
}

func (reader *TCPHeatpumpReader) GetInfo() (*HeatpumpInfo, error) {
	calcs := reader.Calculations()
	if calcs.Len() == 0 {
		return nil, fmt.Errorf("%w: no data read yet", ErrConnection)
	}
	info := infoFromCalculations(calcs)
	info.Host = reader.host
	info.Port = reader.port
	return info, nil
}

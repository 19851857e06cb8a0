package luxtronik

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeController answers the read and write commands of a Luxtronik controller.
type fakeController struct {
	listener net.Listener

	mu     sync.Mutex
	params []int32
	calcs  []int32
	visis  []int8
	badCmd bool
}

func startFakeController(t *testing.T) *fakeController {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	calcs := make([]int32, 100)
	calcs[10] = 425
	calcs[78] = 12
	for i, c := range "V3.88" {
		calcs[81+i] = int32(c)
	}
	calcs[91] = -1062731470
	fc := &fakeController{
		listener: l,
		params:   make([]int32, 10),
		calcs:    calcs,
		visis:    []int8{0, 1, 1, 0},
	}
	go fc.serve()
	t.Cleanup(func() { _ = l.Close() })
	return fc
}

func (fc *fakeController) port() uint {
	return uint(fc.listener.Addr().(*net.TCPAddr).Port)
}

func (fc *fakeController) serve() {
	for {
		conn, err := fc.listener.Accept()
		if err != nil {
			return
		}
		go fc.handle(conn)
	}
}

func (fc *fakeController) handle(conn net.Conn) {
	defer conn.Close()
	for {
		var head [2]int32
		if err := binary.Read(conn, binary.BigEndian, &head); err != nil {
			return
		}
		fc.mu.Lock()
		var out []any
		echo := head[0]
		if fc.badCmd {
			echo = 9999
		}
		switch head[0] {
		case CMD_READ_PARAMETERS:
			out = append(out, echo, int32(len(fc.params)), fc.params)
		case CMD_READ_CALCULATIONS:
			out = append(out, echo, int32(0), int32(len(fc.calcs)), fc.calcs)
		case CMD_READ_VISIBILITIES:
			out = append(out, echo, int32(len(fc.visis)), fc.visis)
		case CMD_WRITE_PARAMETER:
			var value int32
			if err := binary.Read(conn, binary.BigEndian, &value); err != nil {
				fc.mu.Unlock()
				return
			}
			fc.params[head[1]] = value
			out = append(out, echo, head[1])
		}
		fc.mu.Unlock()
		for _, o := range out {
			if err := binary.Write(conn, binary.BigEndian, o); err != nil {
				return
			}
		}
	}
}

func newTestReader(t *testing.T, fc *fakeController, safe bool) HeatpumpReader {
	reader, err := CreateHeatpumpReader("127.0.0.1", fc.port(), time.Second, safe, zap.NewNop(), nil)
	require.NoError(t, err)
	require.NoError(t, reader.Open())
	t.Cleanup(func() { _ = reader.Close() })
	return reader
}

func TestReadAllGroups(t *testing.T) {

	require := require.New(t)

	fc := startFakeController(t)
	reader := newTestReader(t, fc, true)

	require.Equal(0, reader.Calculations().Len(), "empty before first read")
	require.NoError(reader.Read())

	require.Equal(10, reader.Parameters().Len())
	require.Equal(100, reader.Calculations().Len())
	require.Equal(4, reader.Visibilities().Len())

	attr, ok := reader.Calculations().Get("10")
	require.True(ok)
	require.Equal(42.5, attr.Value)
	require.Equal(MeasurementCelsius, attr.Type)

	visi, ok := reader.Visibilities().Get("1")
	require.True(ok)
	require.Equal(true, visi.Value)

	info, err := reader.GetInfo()
	require.NoError(err)
	require.Equal("LWC", info.HeatpumpType)
	require.Equal("V3.88", info.FirmwareVersion)
	require.Equal("192.168.1.50", info.IPAddress)
	require.Equal(fc.port(), info.Port)
}

func TestWriteParameter(t *testing.T) {

	require := require.New(t)

	fc := startFakeController(t)
	reader := newTestReader(t, fc, true)
	require.NoError(reader.Read())

	require.NoError(reader.WriteParameter("ID_Ba_Hz_akt", "Party"))
	fc.mu.Lock()
	require.Equal(int32(2), fc.params[3])
	fc.mu.Unlock()

	err := reader.WriteParameter("0", "1")
	require.ErrorIs(err, ErrUnsafeWrite)

	err = reader.WriteParameter("ID_Unknown", "1")
	require.ErrorIs(err, ErrUnknownAttribute)

	fc.mu.Lock()
	before := fc.params[2]
	fc.mu.Unlock()
	err = reader.WriteParameter("ID_Einst_BWS_akt", "NaN")
	require.ErrorIs(err, ErrInvalidValue)
	fc.mu.Lock()
	require.Equal(before, fc.params[2], "non-finite values never reach the controller")
	fc.mu.Unlock()
}

func TestWriteParameterUnsafe(t *testing.T) {

	require := require.New(t)

	fc := startFakeController(t)
	reader := newTestReader(t, fc, false)
	require.NoError(reader.Read())

	require.NoError(reader.WriteParameter("0", "7"))
	fc.mu.Lock()
	require.Equal(int32(7), fc.params[0])
	fc.mu.Unlock()
}

func TestProtocolMismatchKeepsSnapshot(t *testing.T) {

	require := require.New(t)

	fc := startFakeController(t)
	reader := newTestReader(t, fc, true)
	require.NoError(reader.Read())
	before := reader.Calculations()

	fc.mu.Lock()
	fc.badCmd = true
	fc.mu.Unlock()

	err := reader.Read()
	require.ErrorIs(err, ErrProtocol)
	require.Same(before, reader.Calculations())
}

func TestConnectionRefused(t *testing.T) {

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()

	reader, err := CreateHeatpumpReader("127.0.0.1", uint(port), 200*time.Millisecond, true, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, reader.Open(), ErrConnection)
	assert.ErrorIs(t, reader.Read(), ErrConnection)
}

func TestCreateReaderValidation(t *testing.T) {

	assert := assert.New(t)

	_, err := CreateHeatpumpReader("", 8889, time.Second, true, nil, nil)
	assert.ErrorIs(err, ErrConnection)
	_, err = CreateHeatpumpReader("heatpump", 0, time.Second, true, nil, nil)
	assert.ErrorIs(err, ErrConnection)
}

func TestInstrumentation(t *testing.T) {

	require := require.New(t)

	fc := startFakeController(t)
	var mu sync.Mutex
	calls := map[string]int{}
	inst := &Instrument{
		RecordTime: func(fnName string, _ time.Duration) {
			mu.Lock()
			calls[fnName]++
			mu.Unlock()
		},
	}
	reader, err := CreateHeatpumpReader("127.0.0.1", fc.port(), time.Second, true, zap.NewNop(), inst)
	require.NoError(err)
	defer reader.Close()
	require.NoError(reader.Read())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(1, calls["Read"])
	require.Equal(1, calls["Dial"])
}

func TestReadUnexpectedEOF(t *testing.T) {

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		// swallow the request and hang up
		_, _ = io.ReadFull(conn, make([]byte, 8))
		_ = conn.Close()
	}()
	port := l.Addr().(*net.TCPAddr).Port
	reader, err := CreateHeatpumpReader("127.0.0.1", uint(port), time.Second, true, nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, reader.Read(), ErrConnection)
}

package actor

import (
	"testing"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/core/service"
	"github.com/berfenger/luxtronik2mqtt/internal/util/actorutil"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLuxtronikConfig() *config.Config {
	return &config.Config{
		Sensors: []config.SensorConfig{
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "10", FriendlyName: "Flow Temperature"},
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_WEB_SoftStand"},
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_Does_Not_Exist"},
		},
		BinarySensors: []config.SensorConfig{
			{Group: luxtronik.GROUP_CALCULATIONS, Id: "ID_WEB_HUPout", FriendlyName: "Heating pump"},
		},
	}
}

func spawnLuxtronik(t *testing.T, reader luxtronik.HeatpumpReader, opts ...service.ConnectionManagerOption) (*actor.ActorSystem, *actor.PID) {
	logger := zap.Must(zap.NewDevelopment())
	as := actorutil.NewActorSystemWithZapLogger(logger)
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewLuxtronikActor(reader, testLuxtronikConfig(), nil, logger, opts...)
	})
	pid := as.Root.Spawn(props)
	t.Cleanup(func() {
		as.Root.Stop(pid)
		as.Shutdown()
	})
	return as, pid
}

func TestGetDevicesInfoLuxtronikActor(t *testing.T) {

	require := require.New(t)

	as, pid := spawnLuxtronik(t, luxtronik.CreateTestHeatpumpReader())

	result, err := as.Root.RequestFuture(pid, domain.GetDevicesInfoRequest{}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.GetDevicesInfoResponse)
	require.NoError(resp.ResponseError)

	require.Equal("LWC", resp.Heatpump.HeatpumpType, "heatpump type")
	require.Equal("V3.88.0", resp.Heatpump.FirmwareVersion, "firmware version")
	require.Len(resp.Entities, 3, "unresolved sensor is skipped")

	flow := resp.Entities[0]
	require.Equal("sensor", flow.Component)
	require.Equal("flow_temperature", flow.Identity)
	require.Equal("°C", flow.Unit)
	require.Equal("mdi:thermometer", flow.Icon)

	version := resp.Entities[1]
	require.Equal("ID_WEB_SoftStand", version.Name, "name falls back to the attribute name")
	require.Equal("id_web_softstand", version.Identity)

	pump := resp.Entities[2]
	require.Equal("binary_sensor", pump.Component)
	require.Equal("heating_pump", pump.Identity)
}

func TestTickEntitiesLuxtronikActor(t *testing.T) {

	assert := assert.New(t)
	require := require.New(t)

	reader := luxtronik.CreateTestHeatpumpReader()
	as, pid := spawnLuxtronik(t, reader)

	result, err := as.Root.RequestFuture(pid, domain.TickEntitiesRequest{}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.TickEntitiesResponse)
	require.NoError(resp.ResponseError)
	require.Len(resp.Events, 3)

	assert.Equal(domain.FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "flow_temperature"},
		Value:                  42.5,
		Decimals:               1,
	}, resp.Events[0])
	assert.Equal(domain.TextSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "id_web_softstand"},
		Value:                  "V3.88.0",
	}, resp.Events[1])
	assert.Equal(domain.BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "heating_pump"},
		Value:                  true,
	}, resp.Events[2])

	// one read on start, the tick falls inside the update window
	assert.Equal(1, reader.ReadCount())
}

func TestTickEntitiesSeesNewValues(t *testing.T) {

	require := require.New(t)

	reader := luxtronik.CreateTestHeatpumpReader()
	as, pid := spawnLuxtronik(t, reader, service.WithMinTimeBetweenUpdates(0))

	require.NoError(reader.SetRaw(luxtronik.GROUP_CALCULATIONS, 10, 300))

	result, err := as.Root.RequestFuture(pid, domain.TickEntitiesRequest{}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.TickEntitiesResponse)
	require.Equal(30.0, resp.Events[0].(domain.FloatSensorUpdateEvent).Value)
}

func TestTickEntitiesReadFailure(t *testing.T) {

	require := require.New(t)

	reader := luxtronik.CreateTestHeatpumpReader()
	as, pid := spawnLuxtronik(t, reader, service.WithMinTimeBetweenUpdates(0))

	// wait for the initial read before breaking the controller
	_, err := as.Root.RequestFuture(pid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	require.NoError(err)
	reader.SetFailure(luxtronik.ErrConnection)

	result, err := as.Root.RequestFuture(pid, domain.TickEntitiesRequest{}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.TickEntitiesResponse)
	require.ErrorIs(resp.ResponseError, luxtronik.ErrConnection)
	require.Len(resp.Events, 3, "last known values are still reported")
}

func TestWriteParameterLuxtronikActor(t *testing.T) {

	require := require.New(t)

	reader := luxtronik.CreateTestHeatpumpReader()
	as, pid := spawnLuxtronik(t, reader)

	result, err := as.Root.RequestFuture(pid, domain.WriteParameterRequest{Id: "ID_Ba_Hz_akt", Value: "Party"}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.WriteParameterResponse)
	require.NoError(resp.ResponseError)
	require.Equal("ID_Ba_Hz_akt", resp.Id)
	require.Equal(1, reader.WriteCount())

	result, err = as.Root.RequestFuture(pid, domain.WriteParameterRequest{Id: "0", Value: "1"}, 5*time.Second).Result()
	require.NoError(err)
	resp = result.(domain.WriteParameterResponse)
	require.ErrorIs(resp.ResponseError, luxtronik.ErrUnsafeWrite)
}

func TestLookupAttributeLuxtronikActor(t *testing.T) {

	require := require.New(t)

	as, pid := spawnLuxtronik(t, luxtronik.CreateTestHeatpumpReader())

	result, err := as.Root.RequestFuture(pid, domain.LookupAttributeRequest{Group: "calculations", Id: "ID_WEB_Temperatur_TVL"}, 5*time.Second).Result()
	require.NoError(err)
	resp := result.(domain.LookupAttributeResponse)
	require.NoError(resp.ResponseError)
	require.Equal(10, resp.Attribute.Index)
	require.Equal(42.5, resp.Attribute.Value)

	result, err = as.Root.RequestFuture(pid, domain.LookupAttributeRequest{Group: "settings", Id: "1"}, 5*time.Second).Result()
	require.NoError(err)
	require.ErrorIs(result.(domain.LookupAttributeResponse).ResponseError, luxtronik.ErrUnknownGroup)

	result, err = as.Root.RequestFuture(pid, domain.LookupAttributeRequest{Group: "calculations", Id: "9999"}, 5*time.Second).Result()
	require.NoError(err)
	require.ErrorIs(result.(domain.LookupAttributeResponse).ResponseError, luxtronik.ErrUnknownAttribute)
}

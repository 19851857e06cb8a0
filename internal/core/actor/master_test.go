package actor

import (
	"testing"
	"time"

	adactor "github.com/berfenger/luxtronik2mqtt/internal/adapter/actor"
	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/mqtt"
	"github.com/berfenger/luxtronik2mqtt/internal/util"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type masterFixture struct {
	system    *actor.ActorSystem
	master    *actor.PID
	reader    *luxtronik.TestHeatpumpReader
	mqttActor func() *adactor.MQTTActor
}

func spawnMaster(t *testing.T) *masterFixture {
	as := actor.NewActorSystem()

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	reader := luxtronik.CreateTestHeatpumpReader()
	mqttCh := make(chan *adactor.MQTTActor, 1)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.LuxtronikActor {
			return adactor.NewLuxtronikActor(reader, &cfg, nil, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			act := adactor.NewTestMQTTActor(&cfg, es, logger)
			select {
			case mqttCh <- act:
			default:
			}
			return act
		}, logger)
	})
	pid, err := as.Root.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	require.NoError(t, err)

	var mqttActor *adactor.MQTTActor
	t.Cleanup(func() {
		as.Root.Stop(pid)
		as.Shutdown()
	})
	return &masterFixture{
		system: as,
		master: pid,
		reader: reader,
		mqttActor: func() *adactor.MQTTActor {
			if mqttActor == nil {
				mqttActor = <-mqttCh
			}
			return mqttActor
		},
	}
}

func TestMasterActor(t *testing.T) {

	f := spawnMaster(t)

	assert.Eventually(t, func() bool {
		res, err := f.system.Root.RequestFuture(f.master, domain.ActorHealthRequest{}, 5*time.Second).Result()
		if err != nil {
			return false
		}
		healthResp, ok := res.(domain.ActorHealthResponse)
		return ok && healthResp.Healthy
	}, 10*time.Second, 200*time.Millisecond, "healthy is true")
}

func TestMasterPublishesEntityUpdates(t *testing.T) {

	f := spawnMaster(t)

	expected := domain.FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "flow_temperature"},
		Value:                  42.5,
		Decimals:               1,
	}
	assert.Eventually(t, func() bool {
		for _, ev := range f.mqttActor().Published() {
			if ev == any(expected) {
				return true
			}
		}
		return false
	}, 10*time.Second, 100*time.Millisecond)

	assert.Contains(t, f.mqttActor().Published(), any(domain.BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "utility_lock"},
		Value:                  true,
	}), "inverted binary sensor")
}

func TestMasterRoutesParameterCommand(t *testing.T) {

	f := spawnMaster(t)

	f.system.Root.Send(f.master, adactor.ParsedCommand{Command: &mqtt.ParsedMQTTCommand{
		DeviceId: "ID_Ba_Hz_akt",
		Command:  "parameter",
		Payload:  "Party",
	}})

	assert.Eventually(t, func() bool {
		return f.reader.WriteCount() == 1
	}, 10*time.Second, 100*time.Millisecond)
}

func TestMasterForwardsLookup(t *testing.T) {

	require := require.New(t)

	f := spawnMaster(t)

	res, err := f.system.Root.RequestFuture(f.master, domain.LookupAttributeRequest{
		Group: luxtronik.GROUP_CALCULATIONS,
		Id:    "ID_WEB_Temperatur_TA",
	}, 10*time.Second).Result()
	require.NoError(err)
	resp := res.(domain.LookupAttributeResponse)
	require.NoError(resp.ResponseError)
	require.Equal(-2.5, resp.Attribute.Value)
}

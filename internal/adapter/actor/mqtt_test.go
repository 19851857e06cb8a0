package actor

import (
	"testing"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/mqtt"
	"github.com/berfenger/luxtronik2mqtt/internal/util"
	"github.com/berfenger/luxtronik2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMQTTActor(t *testing.T) {

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	es := eventstream.EventStream{}

	var mqttActor *MQTTActor
	props := actor.PropsFromProducer(func() actor.Actor {
		mqttActor = NewTestMQTTActor(&cfg, &es, logger)
		return mqttActor
	})
	pid := context.Spawn(props)

	msg := domain.ActorHealthRequest{}
	result, err := context.RequestFuture(pid, msg, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.True(t, resp.Healthy)

	flow := domain.FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
			Id: "flow_temperature",
		},
		Value:    42.5,
		Decimals: 1,
	}
	evu := domain.BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
			Id: "utility_lock",
		},
		Value: true,
	}
	es.Publish(flow)
	es.Publish(evu)

	assert.Eventually(t, func() bool {
		return len(mqttActor.Published()) == 2
	}, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, []any{flow, evu}, mqttActor.Published())

	context.Stop(pid)

	time.Sleep(500 * time.Millisecond)

	// unsubscribed on stop
	es.Publish(flow)
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, mqttActor.Published(), 2)

	as.Shutdown()
}

func TestEvent2MQTTMessage(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	act := NewTestMQTTActor(&cfg, nil, zap.NewNop())
	act.client = mqtt.CreateMQTTClient(&cfg, mqtt.OptsFromConfig(&cfg), nil, nil)

	msg := act.event2MQTTMessage(domain.FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "flow_temperature"},
		Value:                  42.456,
		Decimals:               1,
	})
	assert.Equal("luxtronik/sensor/flow_temperature/state", msg.topic)
	assert.Equal("42.5", msg.message)

	msg = act.event2MQTTMessage(domain.TextSensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "firmware"},
		Value:                  "V3.88.0",
	})
	assert.Equal("luxtronik/sensor/firmware/state", msg.topic)
	assert.Equal("V3.88.0", msg.message)

	msg = act.event2MQTTMessage(domain.BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{Id: "utility_lock"},
		Value:                  false,
	})
	assert.Equal("luxtronik/binary_sensor/utility_lock/state", msg.topic)
	assert.Equal(mqtt.MQTT_PAYLOAD_OFF, msg.message)

	msg = act.event2MQTTMessage(domain.BridgeStateUpdateEvent{Value: true})
	assert.Equal("luxtronik/bridge/state", msg.topic)
	assert.Equal(mqtt.MQTT_PAYLOAD_ONLINE, msg.message)
	assert.True(msg.retain)

	assert.Nil(act.event2MQTTMessage("unknown"))
}

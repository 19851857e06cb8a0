package actorutil

import (
	"testing"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedMQTTCommandToCommand(t *testing.T) {

	require := require.New(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "ID_Ba_Hz_akt",
		Command:  "parameter",
		Payload:  "Party",
	})
	require.NoError(err)
	req, ok := cmd.(domain.WriteParameterRequest)
	require.True(ok)
	require.Equal("ID_Ba_Hz_akt", req.Id)
	require.Equal("Party", req.Value)

	_, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: "ID_Ba_Hz_akt", Command: "parameter"})
	require.Error(err)

	_, err = ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{DeviceId: "x", Command: "switch", Payload: "ON"})
	require.Error(err)
}

type gateActor struct {
	behavior actor.Behavior
	stash    *Stash
	received chan string
}

func (state *gateActor) Receive(ctx actor.Context) {
	state.behavior.Receive(ctx)
}

func (state *gateActor) closed(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case string:
		if msg == "open" {
			state.behavior.Become(state.open)
			state.stash.UnstashAll(ctx)
			return
		}
		state.stash.Stash(ctx, msg)
	}
}

func (state *gateActor) open(ctx actor.Context) {
	if msg, ok := ctx.Message().(string); ok {
		state.received <- msg
	}
}

func TestStashKeepsOrder(t *testing.T) {

	received := make(chan string, 10)
	as := actor.NewActorSystem()
	defer as.Shutdown()

	pid := as.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		act := &gateActor{behavior: actor.NewBehavior(), stash: &Stash{}, received: received}
		act.behavior.Become(act.closed)
		return act
	}))

	as.Root.Send(pid, "a")
	as.Root.Send(pid, "b")
	as.Root.Send(pid, "open")
	as.Root.Send(pid, "c")

	var got []string
	for len(got) < 3 {
		select {
		case msg := <-received:
			got = append(got, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout, received %v", got)
		}
	}
	// c is enqueued before the unstashed messages
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got)
}

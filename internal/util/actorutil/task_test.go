package actorutil

import (
	"errors"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

type runTask struct {
	fail bool
}

func taskRunner(results chan string) actor.ReceiveFunc {
	return func(ctx actor.Context) {
		switch msg := ctx.Message().(type) {
		case runTask:
			task := NewBackgroundTask(ctx, func() (*int, error) {
				if msg.fail {
					return nil, errors.New("boom")
				}
				v := 21
				return &v, nil
			})
			MapBackgroundTask(task, func(v *int) *string {
				s := "half of 42"
				if *v != 21 {
					s = "wrong"
				}
				return &s
			}).Recover(func(err error) string {
				return "recovered: " + err.Error()
			}).WithTimeout(time.Second).PipeTo(ctx.Self())
		case string:
			results <- msg
		}
	}
}

func TestBackgroundTask(t *testing.T) {

	results := make(chan string, 2)
	as := actor.NewActorSystem()
	defer as.Shutdown()

	pid := as.Root.Spawn(actor.PropsFromFunc(taskRunner(results)))

	as.Root.Send(pid, runTask{})
	assert.Equal(t, "half of 42", receive(t, results))

	as.Root.Send(pid, runTask{fail: true})
	assert.Equal(t, "recovered: boom", receive(t, results))
}

func receive(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout")
		return ""
	}
}

package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	. "github.com/berfenger/luxtronik2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

const pollJobName = "luxtronik-poll"

// PollerActor periodically asks the luxtronik actor to update every entity
// and publishes the resulting events. Ticks arriving while an update is in
// flight are dropped.
type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler quartz.Scheduler
	cancel    context.CancelFunc

	luxtronikActor *actor.PID
	config         *config.Config
	eventStream    *eventstream.EventStream

	logger *zap.Logger
}

type pollTick struct {
}

// pollJob is run by the quartz scheduler and feeds ticks to the actor.
type pollJob struct {
	send func()
}

func (j *pollJob) Execute(_ context.Context) error {
	j.send()
	return nil
}

func (j *pollJob) Description() string {
	return pollJobName
}

// PollTrigger builds the schedule of the poller: the cron expression when
// set, the fixed interval otherwise. It returns nil when polling is disabled.
func PollTrigger(cfg config.MonitorConfig) (quartz.Trigger, error) {
	if cfg.PollCron != "" {
		trigger, err := quartz.NewCronTrigger(cfg.PollCron)
		if err != nil {
			return nil, fmt.Errorf("invalid poll cron expression %q: %w", cfg.PollCron, err)
		}
		return trigger, nil
	}
	if cfg.PollIntervalMillis > 0 {
		return quartz.NewSimpleTrigger(time.Duration(cfg.PollIntervalMillis) * time.Millisecond), nil
	}
	return nil, nil
}

func NewPollerActor(config *config.Config, luxtronikActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:         config,
		luxtronikActor: luxtronikActor,
		behavior:       actor.NewBehavior(),
		stash:          &Stash{},
		logger:         ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream:    eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started")

		trigger, err := PollTrigger(state.config.MonitorConfig)
		if err != nil {
			panic(err)
		}
		if trigger != nil {
			if err := state.startScheduler(ctx, trigger); err != nil {
				panic(err)
			}
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
		// first update right away
		ctx.Send(ctx.Self(), pollTick{})
	case *actor.Restarting:
		state.stopScheduler()
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   "idle",
		})
	case pollTick:
		state.logger.Debug("poller@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.luxtronikActor, domain.TickEntitiesRequest{}, 30*time.Second), func(err error) any {
			return domain.TickEntitiesResponse{
				ActorResponseMixIn: domain.Failed(err),
			}
		})
		state.behavior.BecomeStacked(state.WaitingTickReceive)
	case *actor.Stopping:
		state.stopScheduler()
	case *actor.Restarting:
		state.stopScheduler()
	default:
		state.logger.Debug("poller@default: ignored", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *PollerActor) WaitingTickReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.TickEntitiesResponse:
		if msg.HasResponseError() {
			state.logger.Error("poller@waiting TickEntitiesResponse error", zap.Error(msg.GetResponseError()))
		} else {
			state.logger.Debug("poller@waiting TickEntitiesResponse", zap.Int("events", len(msg.Events)))
			for _, ev := range msg.Events {
				state.eventStream.Publish(ev)
			}
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case pollTick:
		state.logger.Debug("poller@waiting: update in flight, tick dropped")
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   "polling",
		})
	case *actor.Stopping:
		state.stopScheduler()
	case *actor.Restarting:
		state.stopScheduler()
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) startScheduler(ctx actor.Context, trigger quartz.Trigger) error {
	system := ctx.ActorSystem()
	self := ctx.Self()
	job := &pollJob{send: func() {
		system.Root.Send(self, pollTick{})
	}}

	schedCtx, cancel := context.WithCancel(context.Background())
	sched := quartz.NewStdScheduler()
	sched.Start(schedCtx)
	if err := sched.ScheduleJob(quartz.NewJobDetail(job, quartz.NewJobKey(pollJobName)), trigger); err != nil {
		cancel()
		sched.Stop()
		return err
	}
	state.scheduler = sched
	state.cancel = cancel
	state.logger.Info("polling scheduled", zap.String("trigger", trigger.Description()))
	return nil
}

func (state *PollerActor) stopScheduler() {
	if state.scheduler != nil {
		state.scheduler.Stop()
		state.scheduler = nil
	}
	if state.cancel != nil {
		state.cancel()
		state.cancel = nil
	}
}

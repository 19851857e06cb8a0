package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/berfenger/luxtronik2mqtt/internal/config"
	"github.com/berfenger/luxtronik2mqtt/internal/core/domain"
	"github.com/berfenger/luxtronik2mqtt/internal/core/entity"
	"github.com/berfenger/luxtronik2mqtt/internal/core/events"
	"github.com/berfenger/luxtronik2mqtt/internal/core/service"
	"github.com/berfenger/luxtronik2mqtt/internal/metrics"
	"github.com/berfenger/luxtronik2mqtt/internal/util/actorutil"
	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	LUXTRONIK_ACTOR_ID = "luxtronik"
	taskTimeout        = 10 * time.Second
)

// LuxtronikActor owns the connection manager and the configured entities.
// Every controller operation runs as a background task; requests arriving in
// the meantime are stashed.
type LuxtronikActor struct {
	behavior    actor.Behavior
	stash       *actorutil.Stash
	reader      luxtronik.HeatpumpReader
	config      *config.Config
	managerOpts []service.ConnectionManagerOption
	metrics     *metrics.Metrics
	manager     *service.ConnectionManager
	entities    []entity.Entity
	logger      *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewLuxtronikActor(reader luxtronik.HeatpumpReader, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger,
	opts ...service.ConnectionManagerOption) *LuxtronikActor {
	act := &LuxtronikActor{
		reader:      reader,
		config:      cfg,
		managerOpts: opts,
		metrics:     m,
		behavior:    actor.NewBehavior(),
		stash:       &actorutil.Stash{},
		logger:      actorutil.ActorLogger(LUXTRONIK_ACTOR_ID, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *LuxtronikActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *LuxtronikActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("luxtronik@starting started")
		opts := append([]service.ConnectionManagerOption{service.WithLogger(state.logger)}, state.managerOpts...)
		manager, err := service.NewConnectionManager(state.reader, opts...)
		if err != nil {
			panic(err)
		}
		state.manager = manager
		state.metrics.BindConnectionStats(manager.Stats)
		state.entities = state.setupEntities()
		state.logger.Info("entities ready", zap.Int("count", len(state.entities)))
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.close()
	default:
		state.logger.Debug("luxtronik@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *LuxtronikActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("luxtronik@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      LUXTRONIK_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.LookupAttributeRequest:
		state.logger.Debug("luxtronik@default: LookupAttributeRequest")
		resp := domain.LookupAttributeResponse{}
		if !luxtronik.IsValidGroup(msg.Group) {
			resp.ResponseError = fmt.Errorf("%w: %s", luxtronik.ErrUnknownGroup, msg.Group)
		} else if attr, ok := state.manager.Lookup(msg.Group, msg.Id); ok {
			resp.Attribute = attr
		} else {
			resp.ResponseError = fmt.Errorf("%w: %s/%s", luxtronik.ErrUnknownAttribute, msg.Group, msg.Id)
		}
		actorutil.ForRequest(msg).Respond(ctx, resp)
	case domain.GetDevicesInfoRequest:
		state.logger.Debug("luxtronik@default: GetDevicesInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDevicesInfo),
			mapTaskResult[domain.GetDevicesInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDevicesInfoResponse{
					ActorResponseMixIn: domain.Failed(err),
				},
				replyTo: sender,
			}
		}).WithTimeout(taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingLuxtronik)
	case domain.TickEntitiesRequest:
		state.logger.Debug("luxtronik@default: TickEntitiesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, state.tickEntities),
			mapTaskResult[domain.TickEntitiesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.TickEntitiesResponse{
					ActorResponseMixIn: domain.Failed(err),
				},
				replyTo: sender,
			}
		}).WithTimeout(taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingLuxtronik)
	case domain.WriteParameterRequest:
		state.logger.Debug("luxtronik@default: WriteParameterRequest", zap.String("id", msg.Id))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.WriteParameterResponse {
			a := state.writeParameter(msg.Id, msg.Value)
			return &a
		}),
			mapTaskResult[domain.WriteParameterResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.WriteParameterResponse{
					ActorResponseMixIn: domain.Failed(err),
					Id:                 msg.Id,
				},
				replyTo: sender,
			}
		}).WithTimeout(taskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingLuxtronik)
	case *actor.Stopping:
		state.close()
	default:
		state.logger.Debug("luxtronik@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *LuxtronikActor) WaitingLuxtronik(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("luxtronik@WaitingLuxtronik backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		if msg.replyTo != nil {
			ctx.Send(msg.replyTo, msg.message)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.close()
	default:
		state.logger.Debug("luxtronik@WaitingLuxtronik stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *LuxtronikActor) setupEntities() []entity.Entity {
	var entities []entity.Entity
	for _, s := range entity.SetupSensors(state.manager, state.config.Sensors, state.logger) {
		entities = append(entities, s)
	}
	for _, s := range entity.SetupBinarySensors(state.manager, state.config.BinarySensors, state.logger) {
		entities = append(entities, s)
	}
	return entities
}

func (state *LuxtronikActor) getDevicesInfo() (*domain.GetDevicesInfoResponse, error) {
	info, err := state.manager.Info()
	if err != nil {
		state.logger.Error("heatpump info unavailable", zap.Error(err))
		return nil, err
	}
	descriptors := make([]domain.EntityDescriptor, 0, len(state.entities))
	for _, e := range state.entities {
		descriptors = append(descriptors, domain.EntityDescriptor{
			Component:      e.Component(),
			Identity:       e.Identity(),
			Name:           e.Name(),
			Icon:           e.Icon(),
			Unit:           e.Unit(),
			Classification: e.Classification(),
			Group:          e.Group(),
			Id:             e.Id(),
		})
	}
	return &domain.GetDevicesInfoResponse{
		Heatpump: info,
		Entities: descriptors,
	}, nil
}

// tickEntities updates every entity. All entities share the connection
// manager, so at most one of them triggers a real read.
func (state *LuxtronikActor) tickEntities() *domain.TickEntitiesResponse {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	var tickErr error
	if len(state.entities) == 0 {
		tickErr = state.manager.Refresh(ctx)
	}
	for _, e := range state.entities {
		if err := e.Tick(ctx); err != nil && tickErr == nil {
			tickErr = err
		}
	}
	if tickErr != nil {
		state.metrics.TickFailed()
		state.logger.Warn("entity update failed, publishing last known values", zap.Error(tickErr))
	}
	return &domain.TickEntitiesResponse{
		ActorResponseMixIn: domain.Failed(tickErr),
		Events:             events.EntitiesToUpdateEvents(state.entities),
	}
}

func (state *LuxtronikActor) writeParameter(id string, value string) domain.WriteParameterResponse {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	if err := state.manager.WriteParameter(ctx, id, value); err != nil {
		state.logger.Error("parameter write failed", zap.String("id", id), zap.Error(err))
		return domain.WriteParameterResponse{
			ActorResponseMixIn: domain.Failed(err),
			Id:                 id,
		}
	}
	state.logger.Info("parameter written", zap.String("id", id), zap.String("value", value))
	return domain.WriteParameterResponse{Id: id}
}

func (state *LuxtronikActor) close() {
	if state.manager != nil {
		if err := state.manager.Close(); err != nil {
			state.logger.Warn("heatpump close failed", zap.Error(err))
		}
	}
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}

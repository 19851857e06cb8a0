package domain

import "github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_LUXTRONIK    = "luxtronik"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetDevicesInfoRequest struct {
	ActorRequestMixIn
}

type GetDevicesInfoResponse struct {
	ActorResponseMixIn
	Heatpump *luxtronik.HeatpumpInfo
	Entities []EntityDescriptor
}

// EntityDescriptor is the static description of a configured entity.
type EntityDescriptor struct {
	Component      string
	Identity       string
	Name           string
	Icon           string
	Unit           string
	Classification string
	Group          string
	Id             string
}

type TickEntitiesRequest struct {
	ActorRequestMixIn
}

type TickEntitiesResponse struct {
	ActorResponseMixIn
	Events []any
}

type LookupAttributeRequest struct {
	ActorRequestMixIn
	Group string
	Id    string
}

type LookupAttributeResponse struct {
	ActorResponseMixIn
	Attribute *luxtronik.Attribute
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}

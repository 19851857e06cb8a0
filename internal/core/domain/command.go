package domain

import "fmt"

// ParameterRequest

type ParameterRequest interface {
	ActorRequest
	ParameterCommand() string
}

type ParameterRequestMixIn struct {
	ActorRequestMixIn
}

func (r ParameterRequestMixIn) ParameterCommand() string {
	return fmt.Sprintf("%T", r)
}

// Parameter commands

type WriteParameterRequest struct {
	ParameterRequestMixIn
	Id    string
	Value string
}

type WriteParameterResponse struct {
	ActorResponseMixIn
	Id string
}

// ensure interface compliance
var _ ParameterRequest = (*WriteParameterRequest)(nil)

package port

import (
	"context"

	"github.com/berfenger/luxtronik2mqtt/pkg/luxtronik"
)

// AttributeSource is the read side of a controller connection as seen by entities.
type AttributeSource interface {
	Refresh(ctx context.Context) error
	Lookup(group string, id string) (*luxtronik.Attribute, bool)
}

// ParameterWriter is implemented by sources that can change controller parameters.
type ParameterWriter interface {
	WriteParameter(ctx context.Context, id string, value string) error
}

package dispatcher

import (
	"context"
	"fmt"

	"github.com/morezero/functioneer/pkg/codec"
	"github.com/morezero/functioneer/pkg/field"
)

// Render returns the text form of env. With ReturnStructuredJSON it is the
// JSON envelope; otherwise it is the bare result or message, and success and
// failure can only be told apart by content.
func (d *Dispatcher) Render(env *ResultEnvelope) string {
	if d.opts.ReturnStructuredJSON {
		data, err := codec.EncodePayload(env)
		if err != nil {
			data, _ = codec.EncodePayload(&ResultEnvelope{
				Message: fmt.Sprintf("%s - failed to encode result: %v", logPrefix, err),
			})
		}
		return string(data)
	}
	if !env.Success {
		return env.Message
	}
	text, _ := field.Stringify(env.Result)
	return text
}

// Run dispatches name with positional args and renders the envelope.
func (d *Dispatcher) Run(ctx context.Context, name string, args []any) string {
	return d.Render(d.Dispatch(ctx, name, args))
}

// RunObject dispatches an object call and renders the envelope.
func (d *Dispatcher) RunObject(ctx context.Context, call ObjectCall) string {
	return d.Render(d.DispatchFromObject(ctx, call))
}

// RunArgv dispatches an argument vector and renders the envelope.
func (d *Dispatcher) RunArgv(ctx context.Context, argv []string) string {
	return d.Render(d.DispatchFromArgv(ctx, argv))
}

package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/morezero/functioneer/pkg/codec"
	"github.com/morezero/functioneer/pkg/field"
	"github.com/morezero/functioneer/pkg/fnerr"
	"github.com/morezero/functioneer/pkg/invokable"
)

const logPrefix = "dispatcher:dispatch"

// Options configures a Dispatcher.
type Options struct {
	// ReturnStructuredJSON renders envelopes as JSON. When false only the bare
	// result or message text is rendered and the success flag is lost.
	ReturnStructuredJSON bool
	// AttachHelpOnError appends help text to failure messages.
	AttachHelpOnError bool
	// VerboseLogging enables call tracing and per-argument conversion lines.
	VerboseLogging bool
	// Logger receives verbose output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns structured JSON with help on error and no tracing.
func DefaultOptions() Options {
	return Options{
		ReturnStructuredJSON: true,
		AttachHelpOnError:    true,
	}
}

// Entry is one registered function.
type Entry struct {
	Name        string
	Description string
	Unit        *invokable.Unit
}

// Dispatcher is a registry of named invokable units. Entries are kept in
// registration order and never removed.
type Dispatcher struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string

	opts Options
	log  *slog.Logger
}

// New creates an empty Dispatcher.
func New(opts Options) *Dispatcher {
	log := invokable.DiscardLogger()
	if opts.VerboseLogging {
		log = opts.Logger
		if log == nil {
			log = slog.Default()
		}
	}
	return &Dispatcher{
		entries: make(map[string]*Entry),
		opts:    opts,
		log:     log,
	}
}

// Options returns the options the Dispatcher was built with.
func (d *Dispatcher) Options() Options {
	return d.opts
}

// Register stores callback under name with no fields and returns its unit so
// fields can be chained on. Registering an existing name replaces the entry
// in place.
func (d *Dispatcher) Register(name, description string, callback invokable.Callback) *invokable.Unit {
	return d.store(name, description, invokable.New(callback, d.log)).Unit
}

// RegisterWithSchema is like Register but starts the unit with fields.
func (d *Dispatcher) RegisterWithSchema(name, description string, callback invokable.Callback, fields []*field.Descriptor) *Entry {
	unit := invokable.New(callback, d.log)
	for _, f := range fields {
		unit.AddFunctionField(f)
	}
	return d.store(name, description, unit)
}

func (d *Dispatcher) store(name, description string, unit *invokable.Unit) *Entry {
	e := &Entry{Name: name, Description: description, Unit: unit}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.entries[name]; !exists {
		d.order = append(d.order, name)
	}
	d.entries[name] = e
	return e
}

// Lookup returns the entry registered under name.
func (d *Dispatcher) Lookup(name string) (*Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[name]
	return e, ok
}

// Names returns the registered function names in registration order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.order...)
}

// StringArgs converts text arguments to the argument slice taken by
// Dispatch.
func StringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

// Dispatch runs the function registered under name with positional args and
// returns its envelope. It never panics: every failure, including one raised
// by the callback, becomes a failure envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []any) *ResultEnvelope {
	var callID string
	if d.opts.VerboseLogging {
		callID = uuid.NewString()
		d.log.Debug(fmt.Sprintf("%s - » %s %s call=%s", logPrefix, name, argsText(args), callID))
	}

	e, ok := d.Lookup(name)
	if !ok {
		return d.notFound(name)
	}

	result, err := run(ctx, e.Unit, args)
	if err == nil {
		result, err = codec.EncodeBytes(result)
	}
	if err != nil {
		var fe *fnerr.Error
		if !errors.As(err, &fe) {
			fe = fnerr.NewCallbackError(err)
		}
		if d.opts.VerboseLogging {
			d.log.Debug(fmt.Sprintf("%s - %s failed with %s call=%s", logPrefix, name, fe.Code, callID))
		}
		message := fe.Message
		if d.opts.AttachHelpOnError {
			message += "\n\n" + d.FunctionHelp(name)
		}
		return failure(fe, message)
	}

	return success(result)
}

// DispatchFromObject runs the function named by call[FunctionNameKey],
// mapping the remaining keys onto its fields by name. A key missing from the
// call is passed as a nil argument and fails validation of its field.
func (d *Dispatcher) DispatchFromObject(ctx context.Context, call ObjectCall) *ResultEnvelope {
	name, ok := field.Stringify(call[FunctionNameKey])
	if !ok {
		err := fnerr.NewLookupError("No functionName provided")
		return failure(err, err.Message)
	}

	e, ok := d.Lookup(name)
	if !ok {
		return d.notFound(name)
	}

	fields := e.Unit.Fields()
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = call[f.Name()]
	}
	return d.Dispatch(ctx, name, args)
}

// DispatchFromArgv runs argv[2] with argv[3:] as arguments. argv[0] and
// argv[1] are the program and script slots and are ignored.
func (d *Dispatcher) DispatchFromArgv(ctx context.Context, argv []string) *ResultEnvelope {
	if len(argv) < 3 {
		err := fnerr.NewLookupError("No function name provided")
		return failure(err, err.Message)
	}
	return d.Dispatch(ctx, argv[2], StringArgs(argv[3:]))
}

func (d *Dispatcher) notFound(name string) *ResultEnvelope {
	err := fnerr.NewLookupError(fmt.Sprintf("Function %s not found", name))
	message := err.Message
	if d.opts.AttachHelpOnError {
		message += "\n\n" + d.Help()
	}
	return failure(err, message)
}

// run invokes the unit, turning a panic raised during validation into a
// callback error.
func run(ctx context.Context, unit *invokable.Unit, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fnerr.NewCallbackError(fmt.Errorf("%v", r))
		}
	}()
	return unit.Run(ctx, args)
}

func argsText(args []any) string {
	data, err := codec.EncodePayload(args)
	if err != nil {
		return fmt.Sprint(args)
	}
	return string(data)
}

package tool

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/internal/util"
	"github.com/hupe1980/convokit/logging"
)

const unknownErrorText = "unknown error"

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// Logger receives invocation diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Registry is the name -> capability mapping. It validates arguments against
// a tool's declared parameter schema (required-name presence only) and
// executes the capability, absorbing execution failures into the returned
// outcome.
//
// Registration order is preserved: List returns tools in the order they were
// registered, which downstream ranking relies on as a deterministic
// tie-break.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	order  []string
	logger logging.Logger
}

// NewRegistry constructs an empty registry with optional overrides.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{tools: make(map[string]Tool), logger: opts.Logger}
}

// Register adds a tool under its name. Re-registering a name replaces the
// tool but keeps its original position in the registration order.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// RegisterAll registers multiple tools in the given order.
func (r *Registry) RegisterAll(tools ...Tool) {
	for _, t := range tools {
		r.Register(t)
	}
}

// Unregister removes the named tool. Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		return
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Schema returns the declared parameter schema for the named tool, or nil
// when the tool is unknown or declares none.
func (r *Registry) Schema(name string) map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tools[name]; ok {
		return t.Parameters()
	}
	return nil
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Invoke looks up the named tool, checks required argument presence and
// executes it. Failures never escape as errors; they are mapped into the
// outcome so the caller can branch on MissingParams vs ErrorMessage.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) core.Outcome {
	t, ok := r.Get(name)
	if !ok {
		err := &NotFoundError{Tool: name}
		r.logger.Warn("tool.invoke.not_found", "tool", name)
		return core.Outcome{ErrorMessage: err.Error()}
	}

	if schema := t.Parameters(); schema != nil {
		if missing := util.MissingParameters(args, schema); len(missing) > 0 {
			err := &MissingParametersError{Tool: name, Missing: missing}
			r.logger.Debug("tool.invoke.missing_params", "tool", name, "missing", missing)
			return core.Outcome{ErrorMessage: err.Error(), MissingParams: missing}
		}
	}

	start := time.Now()
	text, err := call(ctx, t, args)
	if err != nil {
		r.logger.Error("tool.invoke.error", "tool", name, "error", err.Error())
		msg := err.Error()
		if msg == "" {
			msg = unknownErrorText
		}
		return core.Outcome{ErrorMessage: msg}
	}

	r.logger.Info("tool.invoke.success", "tool", name, "duration_ms", time.Since(start).Milliseconds())

	return core.Outcome{Succeeded: true, Text: text}
}

// call executes the tool converting panics into errors so a misbehaving
// capability cannot take down the turn.
func call(ctx context.Context, t Tool, args map[string]any) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			switch v := rec.(type) {
			case error:
				err = v
			case string:
				if v == "" {
					v = unknownErrorText
				}
				err = NewToolError(t.Name(), v, "PANIC")
			default:
				err = NewToolError(t.Name(), unknownErrorText, "PANIC")
			}
		}
	}()
	return t.Call(ctx, args)
}

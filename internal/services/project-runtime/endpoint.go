package projectruntime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

const (
	modeDirect = "direct"
	modeHTTP   = "http"

	executionIDHeader = "Function-Execution-Id"
)

// Params are the keyword arguments of an endpoint call.
type Params map[string]any

// Decode copies p into v through JSON, so v's json tags apply.
func (p Params) Decode(v any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

type EndpointFunc func(ctx context.Context, params Params) (any, error)

// Endpoint is the cloud function of a project. It serves HTTP requests
// carrying JSON params and can be called directly. Calls run one at a time,
// like a function instance that takes a single request.
type Endpoint struct {
	name   string
	fn     EndpointFunc
	logger zerolog.Logger

	mu sync.Mutex
}

// RegisterEndpoint makes fn the endpoint of the project. Only one endpoint
// can be registered per runtime.
func (r *Runtime) RegisterEndpoint(name string, fn EndpointFunc) (*Endpoint, error) {
	if r.endpoint != nil {
		return nil, fmt.Errorf("%w: %s is already registered", ErrMultipleRegistration, r.endpoint.name)
	}

	r.endpoint = &Endpoint{
		name:   name,
		fn:     fn,
		logger: r.logger.With().Str("endpoint", name).Logger(),
	}
	r.logger.Info().Str("endpoint", name).Msg("endpoint registered")
	return r.endpoint, nil
}

func (e *Endpoint) Name() string {
	return e.name
}

func (e *Endpoint) Call(ctx context.Context, params Params) (any, error) {
	return e.call(ctx, params, modeDirect)
}

func (e *Endpoint) call(ctx context.Context, params Params, mode string) (any, error) {
	if params == nil {
		params = Params{}
	}

	// The runtime and its clients keep per-login state.
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.fn(ctx, params)
	invocations.With(l{"endpoint": e.name, "mode": mode, "status": status(err)}).Inc()
	return result, err
}

// ServeHTTP reads the body as JSON whatever the content type. An empty body
// means no params.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := e.logger.With().Str("execution_id", r.Header.Get(executionIDHeader)).Logger()

	var params Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn().Err(err).Msg("bad request body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := e.call(r.Context(), params, modeHTTP)
	if err != nil {
		logger.Error().Err(err).Msg("endpoint failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	logger.Info().Msg("endpoint done")
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

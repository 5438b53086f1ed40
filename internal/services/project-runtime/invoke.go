package projectruntime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

type InvokeOptions struct {
	// Directly calls the endpoint function instead of sending it a request.
	Directly bool
	Params   Params
}

// Invoke runs the registered endpoint. Command line args may override opts:
// -d/--directly forces a direct call, -p/--params '<json>' replaces the
// params unless it decodes to an empty object. Unknown args are ignored.
//
// A direct call returns what the function returned. Otherwise the params go
// through the HTTP handler in process and the decoded JSON response is
// returned.
func (r *Runtime) Invoke(ctx context.Context, opts InvokeOptions, args []string) (any, error) {
	if r.endpoint == nil {
		return nil, fmt.Errorf("%w: no endpoint is registered", ErrPrecondition)
	}

	opts, err := overrideInvokeOptions(opts, args)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With().Str("endpoint", r.endpoint.name).Bool("directly", opts.Directly).Logger()
	logger.Debug().Msg("invoke endpoint")

	if opts.Directly {
		return r.endpoint.Call(ctx, opts.Params)
	}
	return r.endpoint.simulateRequest(ctx, opts.Params)
}

func overrideInvokeOptions(opts InvokeOptions, args []string) (InvokeOptions, error) {
	fs := pflag.NewFlagSet("invoke", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)

	directly := fs.BoolP("directly", "d", false, "call the endpoint function directly")
	params := fs.StringP("params", "p", "", "endpoint params as a JSON object")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parse invoke flags: %w", err)
	}

	if *directly {
		opts.Directly = true
	}
	if *params != "" {
		var p Params
		if err := json.Unmarshal([]byte(*params), &p); err != nil {
			return opts, fmt.Errorf("parse --params: %w", err)
		}
		if len(p) > 0 {
			opts.Params = p
		}
	}
	return opts, nil
}

func (e *Endpoint) simulateRequest(ctx context.Context, params Params) (any, error) {
	if params == nil {
		params = Params{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(executionIDHeader, uuid.NewString())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("endpoint %s responded %d: %s", e.name, rec.Code, bytes.TrimSpace(rec.Body.Bytes()))
	}

	var result any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

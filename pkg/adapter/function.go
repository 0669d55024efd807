// Package adapter turns a platform-neutral serverless.Handler into entry points for
// each supported platform.
//
// A Function is built once with New and is read-only afterwards, so its entry
// points may be called concurrently. Every entry point follows the same protocol:
// introspection short-circuit, native event decoding, handler invocation with
// panic containment, and native reply encoding.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fnbridge/pkg/introspect"
	"fnbridge/pkg/metadata"
	"fnbridge/pkg/serverless"
)

// panicMessage is returned to callers in place of the recovered panic value
const panicMessage = "An internal error occurred"

// Config describes a function at construction time
type Config struct {
	// Info is the function's base metadata. Name is required.
	Info metadata.FunctionInfo
	// Version is reported in the invocation context
	Version string
	// Platforms is the configured platform set. It becomes the supported platform
	// list when Info declares none. Defaults to every built-in platform.
	Platforms []string
	// Introspect selects metadata rendering instead of handler execution
	Introspect introspect.Options
	// Output receives rendered metadata. Defaults to os.Stdout.
	Output io.Writer
	// Logger defaults to the logrus standard logger
	Logger logrus.FieldLogger
	// LookupEnv resolves declared environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Function is a handler bound to its metadata
type Function struct {
	handler   serverless.Handler
	info      metadata.FunctionInfo
	version   string
	opts      introspect.Options
	output    io.Writer
	logger    logrus.FieldLogger
	lookupEnv func(string) (string, bool)
}

// ErrorBody is the JSON body of native error replies
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// New binds handler to its configuration. Routes default to the router's
// registrations when handler is a *serverless.Router and none are declared.
func New(handler serverless.Handler, cfg Config) (*Function, error) {
	if handler == nil {
		return nil, serverless.NewRequirementsError("handler is required")
	}
	info, err := buildInfo(handler, cfg)
	if err != nil {
		return nil, err
	}

	f := &Function{
		handler:   handler,
		info:      info,
		version:   cfg.Version,
		opts:      cfg.Introspect,
		output:    cfg.Output,
		logger:    cfg.Logger,
		lookupEnv: cfg.LookupEnv,
	}
	if f.output == nil {
		f.output = os.Stdout
	}
	if f.logger == nil {
		f.logger = logrus.StandardLogger()
	}
	if f.lookupEnv == nil {
		f.lookupEnv = os.LookupEnv
	}
	return f, nil
}

func buildInfo(handler serverless.Handler, cfg Config) (metadata.FunctionInfo, error) {
	info := cfg.Info
	if info.Name == "" {
		return metadata.FunctionInfo{}, serverless.NewRequirementsError("function name is required")
	}
	if info.Description == "" {
		info = info.WithDescription("Serverless function " + info.Name)
	}

	if len(info.Resources.Platforms) == 0 {
		platforms := cfg.Platforms
		if len(platforms) == 0 {
			platforms = PlatformNames()
		}
		reqs := info.Resources
		for _, name := range platforms {
			reqs = reqs.Platform(name)
		}
		info = info.WithResources(reqs)
	}

	if router, ok := handler.(*serverless.Router); ok && len(info.Routes) == 0 {
		for _, r := range router.Routes() {
			info = info.AddRoute(metadata.NewRouteInfo(string(r.Method), r.Path))
		}
	}
	return info, nil
}

// Info returns the merged function metadata
func (f *Function) Info() metadata.FunctionInfo {
	return f.info
}

// EntryPoint is the function a platform runtime calls. event and native are the
// platform's event and context objects: decoded JSON trees, raw JSON, or any
// JSON-encodable value. The reply is always a well-formed native reply.
type EntryPoint func(ctx context.Context, event, native any) map[string]any

// EntryPoint returns the entry point for platform p
func (f *Function) EntryPoint(p Platform) EntryPoint {
	return func(ctx context.Context, event, native any) map[string]any {
		return p.Encode(f.Serve(ctx, p, event, native))
	}
}

// Serve runs the invocation protocol and returns the canonical response to encode.
// It never panics and never returns an error: failures become error responses.
func (f *Function) Serve(ctx context.Context, p Platform, event, native any) (resp serverless.Response) {
	if f.opts.Enabled() {
		return f.infoResponse()
	}

	start := time.Now()
	fields := logrus.Fields{
		"function": f.info.Name,
		"platform": p.Name,
	}

	defer func() {
		if r := recover(); r != nil {
			f.logger.WithFields(fields).WithFields(logrus.Fields{
				"panic":       fmt.Sprint(r),
				"stack_trace": string(debug.Stack()),
			}).Error("Recovered from panic")
			resp = errorResponse(serverless.NewUnexpectedError(errors.New(panicMessage)))
		}
		fields["status_code"] = resp.Status()
		fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1000000
		f.logCompletion(fields, resp.Status())
	}()

	req, err := p.Decode(event)
	if err != nil {
		fields["error"] = err.Error()
		return errorResponse(classify(err, serverless.KindPlatform))
	}

	fc, err := f.newContext(ctx, p, req, native)
	if err != nil {
		fields["error"] = err.Error()
		return errorResponse(classify(err, serverless.KindPlatform))
	}
	fields["request_id"] = fc.RequestID()

	out, err := f.handler.Handle(ctx, req, fc)
	if err != nil {
		fields["error"] = err.Error()
		return errorResponse(classify(err, serverless.KindFunction))
	}
	return out
}

func (f *Function) newContext(ctx context.Context, p Platform, req serverless.Request, native any) (serverless.Context, error) {
	tree, err := nativeTree(native)
	if err != nil {
		return serverless.Context{}, err
	}

	requestID := ""
	if p.RequestID != nil {
		requestID = p.RequestID(ctx, req, tree)
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	fc := serverless.NewContext().
		WithRequestID(requestID).
		WithFunctionName(f.info.Name).
		WithFunctionVersion(f.version).
		WithPlatformData(tree).
		WithLogger(f.logger)

	if deadline, ok := ctx.Deadline(); ok {
		fc = fc.WithDeadline(deadline).WithRemainingTime(max(time.Until(deadline), 0))
	}
	for _, name := range f.info.Resources.Environment {
		if v, ok := f.lookupEnv(name); ok {
			fc = fc.WithEnvVar(name, v)
		}
	}

	if p.Enrich != nil {
		fc = p.Enrich(ctx, fc, tree)
	}
	return fc, nil
}

func (f *Function) infoResponse() serverless.Response {
	out, err := introspect.Display(f.output, f.info, f.opts)
	if err != nil {
		f.logger.WithError(err).Warn("Failed to write function info")
	}
	contentType := "text/plain"
	if f.opts.JSON {
		contentType = "application/json"
	}
	return serverless.NewResponse().
		WithHeader(serverless.HeaderContentType, contentType).
		WithBodyString(out)
}

func (f *Function) logCompletion(fields logrus.Fields, status int) {
	entry := f.logger.WithFields(fields)
	switch {
	case status >= 500:
		entry.Error("Invocation failed")
	case status >= 400:
		entry.Warn("Invocation rejected")
	default:
		entry.Info("Invocation completed")
	}
}

// classify returns err unchanged if it already carries a kind
func classify(err error, kind serverless.Kind) error {
	var e *serverless.Error
	if errors.As(err, &e) {
		return err
	}
	return &serverless.Error{Kind: kind, Message: err.Error(), Err: err}
}

func errorResponse(err error) serverless.Response {
	body := ErrorBody{Error: serverless.KindOf(err).String(), Message: err.Error()}
	var e *serverless.Error
	if errors.As(err, &e) {
		body.Message = e.Message
	}

	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		return serverless.InternalError()
	}
	return serverless.NewResponse().
		WithStatus(serverless.StatusCode(err)).
		WithHeader(serverless.HeaderContentType, "application/json").
		WithBody(data)
}

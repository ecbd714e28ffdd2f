package rest

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restmapper/classifier"
	"github.com/kbukum/restmapper/codec"
	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/httpclient"
	"github.com/kbukum/restmapper/logger"
	"github.com/kbukum/restmapper/mapping"
	"github.com/kbukum/restmapper/observability"
	"github.com/kbukum/restmapper/urlbuilder"
	"github.com/kbukum/restmapper/util"
	"github.com/kbukum/restmapper/version"
)

// Transport executes one request descriptor. It returns the raw response
// for every HTTP status and an error only when no response was received.
type Transport interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// Client maps entity operations to HTTP requests, executes them through a
// Transport and classifies the responses. It is safe for concurrent use.
type Client struct {
	config    Config
	builder   *urlbuilder.Builder
	transport Transport
	adapter   *httpclient.Adapter
	log       *logger.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
	requestID func() string
	mapped    int
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport      Transport
	log            *logger.Logger
	metrics        *observability.Metrics
	tracerName     string
	tracerProvider trace.TracerProvider
	requestID      func() string
}

// WithTransport replaces the default httpclient.Adapter. The client does not
// close a transport it was given; an httpclient.Component registered ahead
// of the client owns the shared adapter's lifecycle.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) { o.transport = t }
}

// WithLogger sets the client logger. Defaults to logger.Get(cfg.Name).
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithMetrics sets the operation instruments. Defaults to instruments on the
// global meter provider.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithTracerName sets the instrumentation scope of the client spans.
func WithTracerName(name string) Option {
	return func(o *clientOptions) { o.tracerName = name }
}

// WithTracerProvider sets the provider the client tracer is taken from.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) { o.tracerProvider = tp }
}

// WithRequestIDGenerator replaces the UUID request ID generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(o *clientOptions) { o.requestID = fn }
}

// New creates a Client. The mapping and translations are resolved and
// copied once; later changes to cfg do not affect the client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &clientOptions{tracerName: observability.DefaultTracerName, requestID: uuid.NewString}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get(cfg.Name)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if o.metrics == nil {
		m, err := observability.NewMetrics(observability.Meter(o.tracerName))
		if err != nil {
			o.log.Warn("operation metrics disabled", logger.MergeWithError(nil, err))
		}
		o.metrics = m
	}

	m, tr, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	cdc, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, errors.InvalidConfig(err.Error()).WithCause(err)
	}
	builder, err := urlbuilder.New(cfg.BaseURL, m,
		urlbuilder.WithTranslations(tr),
		urlbuilder.WithCodec(cdc),
		urlbuilder.WithHeaders(canonicalHeaders(cfg.Headers)),
	)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		builder:   builder,
		transport: o.transport,
		log:       o.log,
		tracer:    o.tracerProvider.Tracer(o.tracerName),
		metrics:   o.metrics,
		requestID: o.requestID,
		mapped:    m.Len(),
	}
	if c.transport == nil {
		adapter, err := httpclient.New(cfg.HTTP)
		if err != nil {
			return nil, err
		}
		c.adapter = adapter
		c.transport = adapter
	}

	fields := logger.Fields(
		"base_url", builder.BaseURL(),
		"mapped", m.Len(),
		"codec", cdc.Name(),
	)
	for k, v := range version.Fields() {
		fields[k] = v
	}
	c.log.Debug("rest client created", fields)
	return c, nil
}

// Name returns the client name.
func (c *Client) Name() string { return c.config.Name }

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.builder.BaseURL() }

// Mapped returns the number of mapped type names across all kinds.
func (c *Client) Mapped() int { return c.mapped }

// Builder returns the request builder, for callers that only need
// descriptors.
func (c *Client) Builder() *urlbuilder.Builder { return c.builder }

// IsAvailable reports whether the transport accepts requests. Transports
// without an IsAvailable method are always considered available.
func (c *Client) IsAvailable(ctx context.Context) bool {
	if a, ok := c.transport.(interface{ IsAvailable(context.Context) bool }); ok {
		return a.IsAvailable(ctx)
	}
	return true
}

// Close releases the idle connections of the default transport.
func (c *Client) Close(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

// Insert creates entity under typeName.
func (c *Client) Insert(ctx context.Context, typeName string, entity mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindInsert, typeName, entity).Unwrap()
}

// Update replaces entity under typeName.
func (c *Client) Update(ctx context.Context, typeName string, entity mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindUpdate, typeName, entity).Unwrap()
}

// Delete removes entity under typeName.
func (c *Client) Delete(ctx context.Context, typeName string, entity mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindDelete, typeName, entity).Unwrap()
}

// Get fetches one entity under typeName.
func (c *Client) Get(ctx context.Context, typeName string, entity mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindGet, typeName, entity).Unwrap()
}

// List fetches the entities under typeName matching filter.
func (c *Client) List(ctx context.Context, typeName string, filter mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindList, typeName, filter).Unwrap()
}

// Assoc links the entities named by typeName.
func (c *Client) Assoc(ctx context.Context, typeName string, entities mapping.Entity) (any, error) {
	return c.Do(ctx, mapping.KindAssoc, typeName, entities).Unwrap()
}

// Do runs one operation and returns its outcome. It calls the transport at
// most once.
func (c *Client) Do(ctx context.Context, kind mapping.Kind, typeName string, entity mapping.Entity) classifier.Outcome {
	ctx, op := observability.StartOperation(ctx, c.tracer, c.metrics, kind.String(), typeName)
	out := c.do(ctx, op, kind, typeName, entity)

	code := ""
	if out.Err != nil {
		code = "UNKNOWN"
		if appErr, ok := errors.AsAppError(out.Err); ok {
			code = string(appErr.Code)
		}
	}
	op.End(ctx, out.StatusCode, code, out.Err)
	return out
}

func (c *Client) do(ctx context.Context, op *observability.Operation, kind mapping.Kind, typeName string, entity mapping.Entity) classifier.Outcome {
	fields := logger.Fields(logger.FieldKind, kind.String(), logger.FieldTypeName, typeName)

	req, ok, err := c.builder.Build(kind, typeName, entity)
	if !ok {
		appErr := errors.UnmappedOperation(kind.String(), typeName)
		c.log.WithContext(ctx).Error("undefined rest mapping", logger.MergeWithError(fields, appErr))
		return classifier.Failed(appErr)
	}
	if err != nil {
		c.log.WithContext(ctx).Error("rest request not built", logger.MergeWithError(fields, err))
		return classifier.Failed(err)
	}

	var requestID string
	if c.config.RequestIDHeader != "" {
		requestID = c.requestID()
		req.Headers[http.CanonicalHeaderKey(c.config.RequestIDHeader)] = requestID
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}
	op.SetRequest(req.Method, req.URL, requestID)

	log := c.log.WithContext(ctx)
	fields[logger.FieldMethod] = req.Method
	fields[logger.FieldURL] = req.URL
	if log.Enabled(zerolog.DebugLevel) {
		debugFields := logger.Fields("headers", util.MaskHeaders(req.Headers, c.config.SecretHeaders...))
		for k, v := range fields {
			debugFields[k] = v
		}
		log.Debug("rest request", debugFields)
	}

	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Body:    req.Body,
		HasBody: req.HasBody,
	})
	if err != nil {
		appErr := transportError(err)
		fields[logger.FieldErrorCode] = string(appErr.Code)
		log.Error("rest transport failed", logger.MergeWithError(fields, err))
		return classifier.Failed(appErr)
	}

	out := classifier.Classify(resp.StatusCode, resp.Body, c.builder.Codec())
	fields[logger.FieldStatusCode] = resp.StatusCode
	fields = logger.MergeWithDuration(fields, op.Duration())
	if out.Err != nil {
		if appErr, ok := errors.AsAppError(out.Err); ok {
			fields[logger.FieldErrorCode] = string(appErr.Code)
		}
		log.Warn("rest request failed", logger.MergeWithError(fields, out.Err))
		return out
	}
	log.Debug("rest response", fields)
	return out
}

// transportError keeps the cause unmodified. Timeouts and cancellations keep
// their own code.
func transportError(err error) *errors.AppError {
	if httpclient.IsTimeout(err) ||
		stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, context.Canceled) {
		return errors.Timeout(err)
	}
	return errors.TransportFailed(err)
}

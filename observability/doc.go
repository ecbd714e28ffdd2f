// Package observability wires OpenTelemetry tracing and metrics for the
// mapping client.
//
// Providers are installed once per process:
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
//
// Each client call is tracked as an Operation: one span named
// "restmapper.<kind>" plus the operation counters and duration histogram.
//
//	ctx, op := observability.StartOperation(ctx, tracer, metrics, "get", "video")
//	op.SetRequest(http.MethodGet, url)
//	op.End(ctx, resp.StatusCode, "", nil)
package observability

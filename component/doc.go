// Package component defines the lifecycle contract shared by the
// transport and the REST client, and a Registry that starts them in
// order and stops them in reverse.
//
//	reg := component.NewRegistry(log)
//	_ = reg.Register(httpComponent)
//	_ = reg.Register(restComponent)
//	if err := reg.StartAll(ctx); err != nil { ... }
//	defer reg.StopAll(ctx)
package component

// Package bootstrap runs a restmapper-based task with a uniform lifecycle:
// validated configuration, a service logger, components started in
// registration order and a graceful shutdown when the task returns or the
// process is interrupted.
//
//	cfg, err := rest.LoadConfig("catalog-sync")
//	app, err := bootstrap.NewApp(cfg)
//	_ = app.RegisterComponent(observability.NewComponent(cfg.Observability))
//	restComp := rest.NewComponent(cfg.REST)
//	_ = app.RegisterComponent(restComp)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := restComp.Client().Insert(ctx, "video", entity)
//	    return err
//	})
package bootstrap

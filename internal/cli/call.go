package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/restmapper/bootstrap"
	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/httpclient"
	"github.com/kbukum/restmapper/observability"
	"github.com/kbukum/restmapper/rest"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <kind> <type> [entity]",
		Short: "Run one mapped operation and print the decoded payload",
		Example: `  restmapper call insert video '{id: 42, title: Intro}'
  restmapper call list video '{limit: 10}' -o yaml
  echo '{id: 42}' | restmapper call get video -`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseOperation(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			app, err := bootstrap.NewApp(cfg)
			if err != nil {
				return err
			}
			if err := app.RegisterComponent(observability.NewComponent(cfg.Observability)); err != nil {
				return err
			}
			transport := httpclient.NewComponent(cfg.REST.HTTP)
			if err := app.RegisterComponent(transport); err != nil {
				return err
			}
			client := rest.NewComponent(cfg.REST,
				rest.WithTransport(transport),
				rest.WithLogger(app.Logger.WithComponent("rest")),
			)
			if err := app.RegisterComponent(client); err != nil {
				return err
			}

			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				payload, err := client.Client().Do(ctx, op.kind, op.typeName, op.entity).Unwrap()
				if err != nil {
					if appErr, ok := errors.AsAppError(err); ok {
						_ = printValue(cmd.OutOrStdout(), opts.output, appErr.ToResponse())
					}
					return err
				}
				return printValue(cmd.OutOrStdout(), opts.output, payload)
			})
		},
	}
}

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newSweepExpiringCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "sweep-expiring",
		Short: "Publish tasks.expiring events for tasks that expire soon",
		Long: "Runs the expiry sweep once. With NATS_URL set the events reach every API instance;\n" +
			"without it they stay in this process and only the log shows the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.boot()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			expiring, err := c.ExpirySweepService.Sweep(ctx)
			if err != nil {
				return err
			}

			return a.writeOut(cmd, map[string]any{
				"expiringTasks": expiring,
				"warnAhead":     c.Config.Expiry.WarnAhead.String(),
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Maximum time for the sweep")
	return cmd
}

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"tasklist-api/pkg/di"
)

type app struct {
	Pretty bool

	container *di.Container
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "todoctl",
		Short:         "Operator commands for the tasklist API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&a.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newSweepExpiringCmd(a))
	cmd.AddCommand(newIssueTokenCmd(a))

	return cmd
}

// boot เปิด DB/messaging/storage ตาม .env เหมือน API server แต่ไม่ start scheduler
func (a *app) boot() (*di.Container, error) {
	if a.container != nil {
		return a.container, nil
	}
	c := di.NewContainer()
	if err := c.InitializeCore(); err != nil {
		return nil, err
	}
	a.container = c
	return c, nil
}

func (a *app) close() {
	if a.container != nil {
		_ = a.container.Cleanup()
		a.container = nil
	}
}

func (a *app) writeOut(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if a.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

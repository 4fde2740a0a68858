package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users, collections and tasks tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.boot()
			if err != nil {
				return err
			}
			defer a.close()

			// AutoMigrate อาจถูกปิดไว้ใน .env จึงสั่งตรงๆ อีกครั้ง
			if err := c.Migrate(); err != nil {
				return err
			}

			return a.writeOut(cmd, map[string]any{
				"migrated": true,
				"database": c.Config.Database.DBName,
			})
		},
	}
}

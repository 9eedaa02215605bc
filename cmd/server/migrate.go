package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each migration step")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(app *application) error {
				m, err := app.migrator(verbose)
				if err != nil {
					return err
				}
				if err := m.Up(cmd.Context()); err != nil {
					return err
				}
				version, err := m.Version(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(app *application) error {
				m, err := app.migrator(verbose)
				if err != nil {
					return err
				}
				if err := m.Down(cmd.Context()); err != nil {
					return err
				}
				version, err := m.Version(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(app *application) error {
				m, err := app.migrator(verbose)
				if err != nil {
					return err
				}
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, colorHeader.Sprintf("%-8s %-10s %s", "VERSION", "STATE", "NAME"))
				for _, s := range statuses {
					state := colorPending.Sprintf("%-10s", "pending")
					if s.Applied {
						state = colorApplied.Sprintf("%-10s", "applied")
					}
					fmt.Fprintf(out, "%05d    %s %s\n", s.Version, state, s.Name)
				}
				return nil
			})
		},
	})

	return cmd
}

// withApp wires an application for a one-shot subcommand and releases
// it afterwards.
func (c *cli) withApp(cmd *cobra.Command, fn func(app *application) error) error {
	app, err := c.openApp(cmd)
	if err != nil {
		return err
	}
	defer app.cleanup()
	return fn(app)
}

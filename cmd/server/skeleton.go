package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/dayplan-api/internal/domain"
)

func (c *cli) skeletonCmd() *cobra.Command {
	var userFlag, untilFlag string

	cmd := &cobra.Command{
		Use:   "skeleton",
		Short: "Create a user's empty Days through a date",
		Long: `Create the missing Days of a user's calendar, from the day after the
latest existing Day (or today) through --until. The range is clamped to
the configured horizon; existing Days are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}
			until, err := domain.ParseDate(untilFlag)
			if err != nil {
				return fmt.Errorf("invalid --until: %w", err)
			}

			return c.withApp(cmd, func(app *application) error {
				created, err := app.scheduleService.GenerateSkeleton(cmd.Context(), userID, until)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(created) == 0 {
					fmt.Fprintln(out, colorMuted.Sprint("No days created."))
					return nil
				}
				fmt.Fprintln(out, colorHeader.Sprintf("Created %d day(s):", len(created)))
				for _, d := range created {
					fmt.Fprintf(out, "  %s\n", formatDate(d))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User ID (UUID)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "Last date to create (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("until")

	return cmd
}

func (c *cli) daysCmd() *cobra.Command {
	var userFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show a user's Days and their slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}
			from, err := domain.ParseDate(fromFlag)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			var to domain.Date
			if toFlag != "" {
				if to, err = domain.ParseDate(toFlag); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			return c.withApp(cmd, func(app *application) error {
				days, err := app.scheduleService.ListDays(cmd.Context(), userID, from, to)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(days) == 0 {
					fmt.Fprintln(out, colorMuted.Sprint("No days in range."))
					return nil
				}
				for _, day := range days {
					fmt.Fprintf(out, "%s %s\n", formatDate(day.Date), colorMuted.Sprint(day.Timezone))
					for _, slot := range day.Slots {
						fmt.Fprintf(out, "  %-8s %s\n", slot.Label, formatSlot(slot))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "User ID (UUID)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last date (YYYY-MM-DD), open-ended when empty")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// formatSlot renders a slot's assignment and flags on one line.
func formatSlot(slot domain.Slot) string {
	var flags []string
	if slot.Locked {
		flags = append(flags, "locked")
	}
	if slot.ManualOnly {
		flags = append(flags, "manual-only")
	}
	suffix := ""
	if len(flags) > 0 {
		suffix = " " + colorMuted.Sprintf("[%s]", strings.Join(flags, ","))
	}

	a := slot.Assignment
	if a == nil {
		return colorMuted.Sprint("-") + suffix
	}
	title := a.TaskTitle
	if title == "" {
		title = a.TaskID
	}
	detail := fmt.Sprintf("(%s, %s", a.Kind, a.Source)
	if a.Fixed {
		detail += ", fixed"
	}
	detail += ")"
	return colorAssigned.Sprint(title) + " " + colorMuted.Sprint(detail) + suffix
}

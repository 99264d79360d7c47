package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/sitemaint/internal/maintenance"
	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/override"
)

// handlerFactory builds the maintenance handler for one invocation and a cleanup func.
type handlerFactory func(cmd *cobra.Command) (maintenance.Handler, func(), error)

func newMaintenanceCmd(build handlerFactory) *cobra.Command {
	var duration int
	var template string
	var showDiff bool

	validArgs := make([]string, 0, len(maintenance.Verbs))
	for _, verb := range maintenance.Verbs {
		validArgs = append(validArgs, string(verb))
	}

	cmd := &cobra.Command{
		Use:       messages.MaintenanceUse,
		Aliases:   []string{"maint"},
		Short:     messages.MaintenanceShort,
		Long:      messages.MaintenanceLong,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verb, ok := parseVerb(args[0])
			if !ok {
				return fmt.Errorf(messages.MaintenanceUnknownVerbFmt, maintenance.ErrUnknownVerb, args[0], strings.TrimRight(cmd.UsageString(), "\n"))
			}
			req := maintenance.Request{Verb: verb}
			if verb == maintenance.VerbOn {
				if cmd.Flags().Changed("duration") {
					d := duration
					req.Duration = &d
				}
				req.Template = template
			}

			handler, cleanup, err := build(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := handler(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Status != nil {
				_, _ = fmt.Fprintln(out, resp.Status.Message(color.New(color.Bold).SprintFunc()))
				return nil
			}
			_, _ = fmt.Fprintln(out, color.GreenString(resp.Message))
			if showDiff {
				printTemplateDiff(cmd, resp.Template)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, messages.MaintenanceFlagDuration)
	cmd.Flags().StringVar(&template, "template", "", messages.MaintenanceFlagTemplate)
	cmd.Flags().BoolVar(&showDiff, "diff", false, messages.MaintenanceFlagDiff)
	return cmd
}

func parseVerb(arg string) (maintenance.Verb, bool) {
	candidate := maintenance.Verb(strings.ToLower(strings.TrimSpace(arg)))
	for _, verb := range maintenance.Verbs {
		if candidate == verb {
			return verb, true
		}
	}
	return "", false
}

func printTemplateDiff(cmd *cobra.Command, change *override.Change) {
	out := cmd.OutOrStdout()
	if change == nil || !change.Changed() {
		_, _ = fmt.Fprintln(out, messages.MaintenanceNoTemplateDiff)
		return
	}
	_, _ = fmt.Fprint(out, override.RenderDiff(*change))
}

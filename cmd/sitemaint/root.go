package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/conn-castle/sitemaint/internal/config"
	"github.com/conn-castle/sitemaint/internal/logging"
	"github.com/conn-castle/sitemaint/internal/maintenance"
	"github.com/conn-castle/sitemaint/internal/messages"
	"github.com/conn-castle/sitemaint/internal/terminal"
)

var (
	getwd     = os.Getwd
	lookupEnv = os.LookupEnv
	now       = time.Now
)

// rootOptions holds the global flags.
type rootOptions struct {
	root       string
	configPath string
	verbose    bool
	color      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := terminal.ColorEnabled(opts.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			color.NoColor = !enabled
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", messages.RootFlagRoot)
	flags.StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	flags.BoolVar(&opts.verbose, "verbose", false, messages.RootFlagVerbose)
	flags.StringVar(&opts.color, "color", terminal.ColorAuto, messages.RootFlagColor)

	cmd.AddCommand(newMaintenanceCmd(opts.handler))
	return cmd
}

// handler resolves the site for this invocation and returns its maintenance handler.
// The returned cleanup closes the log file.
func (o *rootOptions) handler(cmd *cobra.Command) (maintenance.Handler, func(), error) {
	siteRoot, err := resolveSiteRoot(o.root)
	if err != nil {
		return nil, nil, err
	}

	configPath := filepath.Join(siteRoot, config.FileName)
	if strings.TrimSpace(o.configPath) != "" {
		configPath, err = homedir.Expand(o.configPath)
		if err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	paths, err := cfg.Paths(siteRoot)
	if err != nil {
		return nil, nil, err
	}
	paths.ConfigPath = configPath

	logger, closer, err := logging.New(cfg.Log, o.verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("config", configPath).Debug("site resolved")

	ctl := maintenance.NewController(paths,
		maintenance.WithClock(now),
		maintenance.WithLogger(logger.WithField("site", siteRoot)),
	)
	return ctl.Dispatch, func() { _ = closer.Close() }, nil
}

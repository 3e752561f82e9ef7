package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pss/internal/schedule"
)

const Version = "0.1.0"

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pss.yaml"
	}
	return filepath.Join(dir, "pss", "config.yaml")
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "pss",
		Short:         "Personal schedule with recurring tasks and cancellations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Path to config file")

	cmd.AddCommand(
		newAddCmd(&configPath),
		newDeleteCmd(&configPath),
		newShowCmd(&configPath),
		newListCmd(&configPath),
		newEditCmd(&configPath),
		newImportCmd(&configPath),
		newExportCmd(&configPath),
		newEventsCmd(&configPath),
		newExcerptCmd(&configPath),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefixes err with its scheduling error kind when it has one.
func errorLine(err error) string {
	if kind := schedule.KindOf(err); kind != "" {
		return boldRed(iconError+" "+kind) + ": " + err.Error()
	}
	return boldRed(iconError) + " " + err.Error()
}

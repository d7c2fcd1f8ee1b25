package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/pkg/config"
)

var outputFormats = []string{"text", "json", "yaml"}

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	output   string
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "notifyctl",
		Short: "Prepare and send email and SMS notifications",
		Long: `notifyctl resolves recipients from the Directory Service, validates and
prices a message draft, and hands it to the Delivery Backend.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outputFormats, opts.output) {
				return fmt.Errorf("unknown output format %q, want one of %v", opts.output, outputFormats)
			}
			if len(opts.envFiles) == 0 {
				return nil
			}
			return config.LoadEnv(opts.envFiles...)
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json, yaml")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "Env files to load before reading settings")

	root.AddCommand(previewCmd(opts))
	root.AddCommand(sendCmd(opts))
	root.AddCommand(categoryCmd(opts))
	root.AddCommand(statusCmd(opts))

	return root
}

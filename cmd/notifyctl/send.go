package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

type draftOptions struct {
	file string
}

func (o *draftOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Draft file in YAML, - for stdin")
	_ = cmd.MarkFlagRequired("file")
}

func previewCmd(global *globalOptions) *cobra.Command {
	opts := &draftOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show who a draft would reach and what it would cost",
		Long: `Validate a draft, resolve its recipients and price it without sending.
Recipients without an address for the chosen channel are listed as excluded.`,
		Example: `  notifyctl preview -f draft.yaml
  cat draft.yaml | notifyctl preview -f - -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraft(cmd, global, opts, (*messaging.Dispatcher).Preview)
		},
	}
	opts.bind(cmd)
	return cmd
}

func sendCmd(global *globalOptions) *cobra.Command {
	opts := &draftOptions{}
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send or schedule a draft",
		Long: `Validate a draft, resolve its recipients and hand it to the Delivery Backend.
Drafts with scheduled_time are scheduled instead of sent immediately.`,
		Example: `  notifyctl send -f draft.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraft(cmd, global, opts, (*messaging.Dispatcher).Dispatch)
		},
	}
	opts.bind(cmd)
	return cmd
}

type draftRunner func(*messaging.Dispatcher, context.Context, messaging.Draft) (messaging.Result, error)

// runDraft prints the report even when the attempt fails, so the caller
// sees how far it got, and then returns the error.
func runDraft(cmd *cobra.Command, global *globalOptions, opts *draftOptions, run draftRunner) error {
	draft, err := loadDraft(opts.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	res, runErr := run(a.dispatcher, ctx, draft)
	if err := outputResult(cmd.OutOrStdout(), newSendReport(res, runErr), global.output); err != nil {
		return err
	}
	return runErr
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/svc/delivery"
)

func statusCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status <message-id>",
		Short:   "Show the delivery status of a message",
		Example: `  notifyctl status 5b0c7a4e-9b1f-4c55-a7a4-0d6a39f3c2e1 -o json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := newStatusClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			st, err := backend.Status(cmd.Context(), args[0])
			if delivery.IsNotFound(err) {
				return fmt.Errorf("message %s not found", args[0])
			}
			if err != nil {
				return err
			}
			return outputResult(cmd.OutOrStdout(), StatusReport{MessageStatus: st, Pending: st.Pending()}, global.output)
		},
	}
}

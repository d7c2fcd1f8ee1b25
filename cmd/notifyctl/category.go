package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

func categoryCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories and their members",
	}
	cmd.AddCommand(categoryCreateCmd(global))
	cmd.AddCommand(categorySyncCmd(global))
	return cmd
}

func categoryCreateCmd(global *globalOptions) *cobra.Command {
	var (
		name        string
		description string
		parent      int64
		contacts    []int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category and attach contacts to it",
		Long: `Create a category, then attach every selected contact concurrently.
The category is kept even when some attachments fail; the report lists them.`,
		Example: `  notifyctl category create --name Volunteers --contacts 42,7,9`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := messaging.CategoryRequest{Name: name, Description: description}
			if cmd.Flags().Changed("parent") {
				req.ParentID = &parent
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, runErr := a.dispatcher.CreateCategoryWithContacts(ctx, req, contacts)
			return reportMembership(cmd, global, res, runErr)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	cmd.Flags().StringVar(&description, "description", "", "Category description")
	cmd.Flags().Int64Var(&parent, "parent", 0, "Parent category id")
	cmd.Flags().Int64SliceVar(&contacts, "contacts", nil, "Contact ids to attach")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func categorySyncCmd(global *globalOptions) *cobra.Command {
	var contacts []int64

	cmd := &cobra.Command{
		Use:   "sync <category-id>",
		Short: "Make a category's members match the selected contacts",
		Long: `Attach selected contacts that are not members and detach members that are
not selected. Changes run concurrently and are not rolled back on failure.`,
		Example: `  notifyctl category sync 4 --contacts 42,9`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, runErr := a.dispatcher.ReconcileMembers(ctx, id, contacts)
			return reportMembership(cmd, global, res, runErr)
		},
	}

	cmd.Flags().Int64SliceVar(&contacts, "contacts", nil, "Contact ids that should be members")
	return cmd
}

func reportMembership(cmd *cobra.Command, global *globalOptions, res messaging.MembershipResult, runErr error) error {
	if err := outputResult(cmd.OutOrStdout(), newMembershipReport(res, runErr), global.output); err != nil {
		return err
	}
	return runErr
}

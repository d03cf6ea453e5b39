package main

import (
	"strings"

	"github.com/spf13/cobra"

	"expense-tracker/internal/backend"
	"expense-tracker/internal/services"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Track personal expenses from the command line",
		Long: `expense-tracker records personal expenses in a local data file.
Each invocation runs one command and exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&a.file, "file", "", "path to the expenses data file (overrides EXPENSES_FILE)")
	root.PersistentFlags().StringVar(&a.backendName, "backend", "", "storage backend, one of "+strings.Join(backend.GetBackendTypeStrings(), ", ")+" (overrides DATA_BACKEND)")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newSummaryCmd(a),
	)
	return root
}

func newAddCmd(a *app) *cobra.Command {
	var opts services.AddOptions
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an expense dated today",
		Example: `  expense-tracker add --description "Lunch" --amount 20`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Add(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Description, "description", "", "what the money was spent on")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "amount spent, greater than zero")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.List(cmd.Context())
			return err
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var opts services.UpdateOptions
	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Change the description and/or amount of an expense",
		Example: `  expense-tracker update --id 1 --amount 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			return svc.Update(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ID, "id", "", "id of the expense to update")
	cmd.Flags().StringVar(&opts.Description, "description", "", "new description")
	cmd.Flags().StringVar(&opts.Amount, "amount", "", "new amount, greater than zero")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var opts services.DeleteOptions
	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Delete an expense",
		Example: `  expense-tracker delete --id 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			return svc.Delete(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ID, "id", "", "id of the expense to delete")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var opts services.SummaryOptions
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total expenses, optionally for one month of the current year",
		Example: `  expense-tracker summary
  expense-tracker summary --month 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Summary(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.Month, "month", "", "month number, 1-12")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"expense-tracker/internal/backend"
	"expense-tracker/internal/cli"
	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/services"
)

func main() {
	cli.LoadEnvFile()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, core.SystemClock))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, clock core.Clock) int {
	a := &app{stdout: stdout, stderr: stderr, clock: clock}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		applog.FromContext(cmd.Context()).Debug("Command failed",
			applog.FieldOperation, cmd.Name(),
			applog.FieldError, err)
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, core.ErrUsage) {
		fmt.Fprintln(w, "Run 'expense-tracker --help' for usage.")
	}
}

// app holds per-invocation state shared by the subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	clock  core.Clock

	file        string
	backendName string

	cleanup backend.CleanupFunc
}

// service opens the configured backend and builds the expense service.
// Called only by subcommands that touch the data, so --help never opens it.
func (a *app) service(cmd *cobra.Command) (*services.ExpenseService, error) {
	ctx := cmd.Context()
	cfg, err := cli.LoadAndValidateConfig(cli.Overrides{
		DataBackend:  a.backendName,
		ExpensesFile: a.file,
	})
	if err != nil {
		return nil, err
	}

	logger, err := cli.SetupLogger(cfg.LogLevel, a.stderr)
	if err != nil {
		return nil, err
	}

	cli.LogConfig(logger, cfg)

	result, err := cli.OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.cleanup = result.Cleanup
	cmd.SetContext(applog.NewContext(ctx, logger))

	opts := []services.Option{
		services.WithClock(a.clock),
		services.WithCurrency(cfg.CurrencySymbol),
		services.WithLogger(logger),
	}
	if result.Notifier != nil {
		opts = append(opts, services.WithNotifier(result.Notifier))
	}
	return services.NewExpenseService(result.Store, a.stdout, opts...), nil
}

func (a *app) close() {
	if a.cleanup != nil {
		if err := a.cleanup(); err != nil {
			fmt.Fprintf(a.stderr, "Warning: %v\n", err)
		}
		a.cleanup = nil
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"acetics-cli/internal/acetics"
	"acetics-cli/internal/config"
	"acetics-cli/internal/format"
	"acetics-cli/internal/model"
	"acetics-cli/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X acetics-cli/internal/cli.Version=...".
var Version = "dev"

const abortedMessage = "Tâche non enregistrée."

type App struct {
	TaskType   string
	Priority   string
	DryRun     bool
	PrettyJSON bool
	Format     string
	Debug      bool

	runForm    func(tui.FormOptions) (tui.FormResult, error)
	httpClient *http.Client
	now        func() time.Time
	debugLog   *os.File
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{runForm: tui.RunTaskForm})
}

func newRootCmd(app *App) *cobra.Command {
	if app.runForm == nil {
		app.runForm = tui.RunTaskForm
	}

	cmd := &cobra.Command{
		Use:           "acetics",
		Short:         "Log a task in Acetics from an interactive form",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Log a customer call
  acetics

  # Log a technical task with high priority
  acetics --type technical --priority high

  # Fill the form but only print the task JSON
  acetics --dry-run --pretty

  # Where is my configuration?
  acetics config path
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateTask(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setupLogging()
	}

	cmd.Flags().StringVar(&app.TaskType, "type", envOr("ACETICS_TYPE", model.TaskTypeCustomerCall.String()), "Task type (customer-call|technical|administrative|reminder)")
	cmd.Flags().StringVar(&app.Priority, "priority", envOr("ACETICS_PRIORITY", "normal"), "Task priority (low|normal|high|urgent)")
	cmd.Flags().BoolVar(&app.DryRun, "dry-run", false, "Print the task JSON instead of submitting it")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ACETICS_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", envBool("ACETICS_DEBUG"), "Write a debug log to <config dir>/debug.log")

	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newStaffsCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	app.closeLoggingAfter(cmd)

	return cmd
}

// closeLoggingAfter wraps every RunE under c so the debug log is also closed
// when the command fails.
func (app *App) closeLoggingAfter(c *cobra.Command) {
	if run := c.RunE; run != nil {
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := app.closeLogging(); err == nil {
					err = cerr
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range c.Commands() {
		app.closeLoggingAfter(sub)
	}
}

func runCreateTask(cmd *cobra.Command, app *App) error {
	typ, err := model.ParseTaskType(app.TaskType)
	if err != nil {
		return writeErr(cmd, errInvalidFlag("type", app.TaskType, err))
	}
	priority, err := model.ParseTaskPriority(app.Priority)
	if err != nil {
		return writeErr(cmd, errInvalidFlag("priority", app.Priority, err))
	}
	if err := format.CheckFormat(app.Format); err != nil {
		return writeErr(cmd, errInvalidFlag("format", app.Format, err))
	}

	cfg, err := loadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}

	res, err := app.runForm(tui.FormOptions{
		Type:     typ,
		Priority: priority,
		Roster:   cfg,
		Now:      app.now,
	})
	switch {
	case errors.Is(err, tui.ErrFormAborted):
		log.Printf("task not submitted: form aborted")
		fmt.Fprintln(cmd.ErrOrStderr(), abortedMessage)
		return nil
	case errors.Is(err, tui.ErrFormInterrupted):
		return err
	case err != nil:
		return writeErr(cmd, err)
	}

	if app.DryRun {
		return writeOut(cmd, app, res.Task)
	}

	client := acetics.New(cfg.Endpoint, cfg.Token,
		acetics.WithHTTPClient(app.httpClient),
		acetics.WithUserAgent("acetics-cli/"+Version),
	)
	raw, err := client.CreateTask(cmd.Context(), res.Task)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("create task: %w", err))
	}
	if hint := format.ResponseHint(raw); hint != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Tâche enregistrée (%s).\n", hint)
	}
	return format.WriteRaw(cmd.OutOrStdout(), raw, app.Format, app.PrettyJSON)
}

// loadConfig loads and validates the configuration. A missing file is
// bootstrapped and reported as *config.BootstrapError.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: %s (%d staffs, default index %d)", cfg.FilePath(), len(cfg.Staffs()), cfg.DefaultStaffIndex())
	return cfg, nil
}

// setupLogging keeps the standard logger off the terminal: the form owns
// the screen. With --debug it appends to debug.log in the config dir.
func (app *App) setupLogging() error {
	if !app.Debug {
		log.SetOutput(io.Discard)
		return nil
	}
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "acetics")
	if err != nil {
		return err
	}
	app.debugLog = f
	log.Printf("acetics %s", Version)
	return nil
}

func (app *App) closeLogging() error {
	if app.debugLog == nil {
		return nil
	}
	log.SetOutput(io.Discard)
	err := app.debugLog.Close()
	app.debugLog = nil
	return err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	return err == nil && b
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

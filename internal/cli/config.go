package cli

import (
	"fmt"

	"acetics-cli/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd(app))
	cmd.AddCommand(newConfigValidateCmd(app))
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	var showToken bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file + environment) as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Encode(cmd.OutOrStdout(), showToken); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showToken, "show-token", false, "Print the token instead of <redacted>")
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the example configuration if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, created, err := config.Bootstrap()
			if err != nil {
				return writeErr(cmd, err)
			}
			hints := []string{"edit " + p, "acetics config validate"}
			return writeOut(cmd, app, map[string]any{
				"data":   map[string]any{"path": p, "created": created},
				"_hints": hints,
			})
		},
	}
}

func newConfigValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			def, ok := cfg.DefaultStaff()
			data := map[string]any{
				"path":     cfg.FilePath(),
				"endpoint": cfg.Endpoint,
				"staffs":   len(cfg.Staffs()),
			}
			if ok {
				data["defaultStaff"] = def
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
}

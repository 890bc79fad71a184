package cli

import (
	"github.com/spf13/cobra"
)

type staffRow struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

func newStaffsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "staffs",
		Short: "List the configured staff roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([]staffRow, 0, len(cfg.Staffs()))
			for _, s := range cfg.Staffs() {
				rows = append(rows, staffRow{ID: s.ID, Name: s.Name, Default: cfg.IsDefaultStaff(s)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/diagnostic/cmd/camdiag/internal/config"
	"github.com/go-drift/diagnostic/pkg/permission"
)

// palette colors status names for a single command run.
type palette map[permission.Status]*color.Color

func newPalette(noColor bool) palette {
	p := palette{
		permission.Granted:      color.New(color.FgGreen),
		permission.Limited:      color.New(color.FgYellow),
		permission.Denied:       color.New(color.FgRed),
		permission.DeniedAlways: color.New(color.FgRed, color.Bold),
		permission.NotRequested: color.New(color.Faint),
	}
	if noColor {
		for _, c := range p {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) status(s permission.Status) string {
	if c, ok := p[s]; ok {
		return c.Sprint(s)
	}
	return s.String()
}

func newStatusCommand(a *app) *cobra.Command {
	var (
		sdk         int
		storage     bool
		file        string
		assignments []string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Combine permission statuses into the camera authorization status",
		Long: `Combine per-permission statuses into the single camera authorization
status. Statuses come from --file (a YAML or JSON map of permission to status)
and --set PERMISSION=STATUS flags, which take precedence. Permissions with no
status are treated as DENIED.

Examples:
  camdiag status --sdk 34 --storage --set CAMERA=GRANTED --set READ_MEDIA_VISUAL_USER_SELECTED=GRANTED
  camdiag status --file statuses.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := permission.StatusMap{}
			if file != "" {
				loaded, err := config.LoadStatusFile(file)
				if err != nil {
					return err
				}
				statuses = loaded
			}
			for _, assignment := range assignments {
				id, status, err := config.ParseAssignment(assignment)
				if err != nil {
					return err
				}
				statuses[id] = status
			}

			level := a.sdk(cmd, sdk)
			band := permission.ClassifySDK(level)
			withStorage := a.includeStorage(cmd, storage)

			for id, status := range statuses {
				if !status.Valid() {
					a.logger.Warn().
						Str("permission", id.String()).
						Str("status", status.String()).
						Msg("unrecognized status is ignored when combining")
				}
			}

			writeStatusReport(cmd.OutOrStdout(), a.colors, statuses, withStorage, band, level)
			return nil
		},
	}
	cmd.Flags().IntVar(&sdk, "sdk", 0, "host SDK level (default from config)")
	cmd.Flags().BoolVar(&storage, "storage", false, "include storage permissions")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file mapping permission to status")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "PERMISSION=STATUS (repeatable)")
	return cmd
}

func writeStatusReport(w io.Writer, colors palette, statuses permission.StatusMap, withStorage bool, band permission.Band, sdk int) {
	fmt.Fprintf(w, "%-34s %s (sdk %d)\n", "band", band, sdk)
	for _, id := range permission.Resolve(withStorage, band) {
		status, reported := statuses[id]
		if !reported {
			fmt.Fprintf(w, "%-34s %s (not reported)\n", id, colors.status(permission.Denied))
			continue
		}
		fmt.Fprintf(w, "%-34s %s\n", id, colors.status(status))
	}
	if withStorage {
		fmt.Fprintf(w, "%-34s %s\n", "storage", colors.status(permission.StorageStatus(statuses, band)))
	}
	fmt.Fprintf(w, "%-34s %s\n", "status", colors.status(permission.CombinedCameraStorageStatus(statuses, withStorage, band)))
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/diagnostic/pkg/permission"
)

func newPermissionsCommand(a *app) *cobra.Command {
	var (
		sdk     int
		storage bool
	)
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "List the runtime permissions queried for the camera",
		Long: `List the runtime permissions the diagnostic queries or requests for the
camera at the given SDK level, one per line. CAMERA is always first; storage
permissions follow when --storage is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			band := permission.ClassifySDK(a.sdk(cmd, sdk))
			for _, id := range permission.Resolve(a.includeStorage(cmd, storage), band) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&sdk, "sdk", 0, "host SDK level (default from config)")
	cmd.Flags().BoolVar(&storage, "storage", false, "include storage permissions")
	return cmd
}

func newBandCommand(a *app) *cobra.Command {
	var sdk int
	cmd := &cobra.Command{
		Use:   "band",
		Short: "Show the OS version band for an SDK level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := a.sdk(cmd, sdk)
			band := permission.ClassifySDK(level)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (sdk %d)\n", band, level)
			return nil
		},
	}
	cmd.Flags().IntVar(&sdk, "sdk", 0, "host SDK level (default from config)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "camdiag version %s (built %s)\n", Version, BuildTime)
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-view/internal/presentation/formatter"
)

var (
	segmentsViewport viewportFlags
	segmentsOutput   string
)

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "List the regular and collapsible time segments",
	Long: `Splits the time axis into the periods that hold events and the quiet gaps
between them. Each gap lists its id, which --expand accepts on every command,
and whether it is currently collapsed.`,
	RunE: runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)

	segmentsViewport.register(segmentsCmd, false)
	segmentsCmd.Flags().StringVarP(&segmentsOutput, "output", "o", "text",
		"Output format (text, json)")
}

func runSegments(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	segmentsViewport.apply(cmd, cfg)
	if flagApplies(cmd, "output") {
		cfg.Output = segmentsOutput
	}
	if err := initRuntime(cfg, true); err != nil {
		return err
	}

	// Fail on chart before touching the files
	labels, days := timeAxis(cfg)
	f, err := formatter.New(cfg.Output, labels)
	if err != nil {
		return err
	}

	tv, _, err := loadView(cfg, labels, days)
	if err != nil {
		return err
	}
	return f.FormatSegments(cmd.OutOrStdout(), tv.Segments())
}

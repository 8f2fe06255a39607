package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"fancyfolders/internal/config"
	"fancyfolders/internal/generator"
	"fancyfolders/internal/processor"
	"fancyfolders/internal/style"
	"fancyfolders/internal/tui"
)

var (
	batchOutputDir   string
	batchStyle       string
	batchScale       float64
	batchTint        string
	batchPreviewSize int
	batchICO         bool
	batchVerbose     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <path>",
	Short: "Render a folder icon for every image under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		s, err := style.Parse(batchStyle)
		if err != nil {
			return err
		}
		tint, err := parseTint(batchTint)
		if err != nil {
			return err
		}
		if batchScale < generator.MinScale || batchScale > generator.MaxScale {
			return fmt.Errorf("--scale must be between %.1f and %.1f", generator.MinScale, generator.MaxScale)
		}
		if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		updates := make(chan processor.ProgressUpdate, 64)
		program := tea.NewProgram(tui.NewModel(updates))

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		summary, reports, err := processor.Run(ctx, path, newGenerator(), processor.Options{
			OutputDir:   batchOutputDir,
			Style:       s,
			Scale:       batchScale,
			Tint:        tint,
			PreviewSize: batchPreviewSize,
			ICO:         batchICO,
			Workers:     cfg.Workers,
			Log:         config.Log,
		}, updates)

		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		for _, report := range reports {
			switch {
			case report.Err != nil:
				fmt.Fprintf(os.Stdout, "%s %s\n  %s %s\n",
					batchFailStyle.Render("✗"), batchFileStyle.Render(report.Path),
					batchBulletStyle.Render("-"), batchDimStyle.Render(report.Err.Error()))
			case batchVerbose:
				fmt.Fprintf(os.Stdout, "%s %s\n", batchOKStyle.Render("✓"), batchFileStyle.Render(report.Path))
				for _, out := range report.Outputs {
					fmt.Fprintf(os.Stdout, "  %s %s\n", batchBulletStyle.Render("-"), batchValueStyle.Render(out))
				}
			}
		}

		rows := []tui.SummaryRow{
			{Label: "Badge images found", Value: fmt.Sprintf("%d", summary.Total)},
			{Label: "Icons generated", Value: fmt.Sprintf("%d", summary.Processed)},
			{Label: "Failures", Value: fmt.Sprintf("%d", summary.Errors)},
			{Label: "Bytes written", Value: tui.HumanBytes(summary.BytesWritten)},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		fmt.Fprintf(os.Stdout, "Icons written to: %s\n", absPath(batchOutputDir))
		return nil
	},
}

var (
	batchFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	batchValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	batchDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	batchBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
	batchOKStyle     = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	batchFailStyle   = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "icons", "destination folder for generated icons")
	batchCmd.Flags().StringVarP(&batchStyle, "style", "s", style.Default.String(), "folder style: big-sur-light, big-sur-dark, catalina")
	batchCmd.Flags().Float64Var(&batchScale, "scale", generator.DefaultScale, "badge scale (0.1 - 1.5)")
	batchCmd.Flags().StringVar(&batchTint, "tint", "", "tint colour: a palette name or #rrggbb")
	batchCmd.Flags().IntVar(&batchPreviewSize, "preview-size", 0, "render at this size instead of the native 1024px")
	batchCmd.Flags().BoolVar(&batchICO, "ico", false, "also write a 256px .ico for every icon")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "list every generated file")

	rootCmd.AddCommand(batchCmd)
}

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"fancyfolders/internal/config"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/generator"
	"fancyfolders/internal/regen"
	"fancyfolders/internal/style"
	"fancyfolders/internal/tui"
)

var (
	liveStyle       string
	liveWeight      string
	liveScale       float64
	liveTint        string
	liveText        string
	liveOut         string
	livePreviewSize int
)

var liveCmd = &cobra.Command{
	Use:   "live [flags]",
	Short: "Edit a text badge interactively, re-rendering a preview on every keystroke",
	Long: `live opens a small terminal editor. Every change re-renders the icon in the
background and writes the preview (cropped to the visible folder) to --out, so
an image viewer that reloads on change shows the result as you type.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := style.Parse(liveStyle)
		if err != nil {
			return err
		}
		weight, err := fonts.ParseWeight(liveWeight)
		if err != nil {
			return err
		}
		tint, err := parseTint(liveTint)
		if err != nil {
			return err
		}

		sched := regen.New(newGenerator(), cfg.Workers, config.Log)
		defer sched.Close()

		model := tui.NewLiveModel(sched, tui.LiveOptions{
			Style:       s,
			Weight:      weight,
			Scale:       liveScale,
			Tint:        tint,
			Text:        liveText,
			PreviewSize: livePreviewSize,
			OutPath:     liveOut,
		}).Start()

		final, err := tea.NewProgram(model).Run()
		if err != nil {
			return err
		}
		if m, ok := final.(tui.LiveModel); ok && m.Text() != "" {
			fmt.Fprintf(os.Stdout, "Last badge text: %q\n", m.Text())
		}
		fmt.Fprintf(os.Stdout, "Preview written to: %s\n", absPath(liveOut))
		return nil
	},
}

func init() {
	liveCmd.Flags().StringVarP(&liveStyle, "style", "s", style.Default.String(), "initial folder style")
	liveCmd.Flags().StringVarP(&liveWeight, "weight", "w", fonts.DefaultWeight.String(), "initial SF Pro weight")
	liveCmd.Flags().Float64Var(&liveScale, "scale", generator.DefaultScale, "initial badge scale")
	liveCmd.Flags().StringVar(&liveTint, "tint", "", "tint colour: a palette name or #rrggbb")
	liveCmd.Flags().StringVarP(&liveText, "text", "t", "", "initial badge text")
	liveCmd.Flags().StringVarP(&liveOut, "out", "o", "preview.png", "where the preview is written")
	liveCmd.Flags().IntVar(&livePreviewSize, "preview-size", generator.DefaultPreviewSize, "preview edge length in pixels")

	rootCmd.AddCommand(liveCmd)
}

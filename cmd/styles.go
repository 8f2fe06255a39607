package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fancyfolders/internal/assets"
	"fancyfolders/internal/colour"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/style"
	"fancyfolders/internal/tui"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List folder styles, tint colours and the fonts that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := &assets.Locator{Dir: cfg.AssetsDir, FontDirs: cfg.FontDirs}

		var rows [][]string
		for _, s := range style.All() {
			asset := "ok"
			if _, err := os.Stat(loc.FolderPath(s)); err != nil {
				asset = "missing"
			}
			b := s.BadgeBox()
			rows = append(rows, []string{
				s.String(),
				s.DisplayName(),
				fmt.Sprintf("%dpx", s.Size()),
				fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", b[0], b[1], b[2], b[3]),
				tui.Swatch(s.BaseColour()) + " " + s.BaseColour().Hex(),
				tui.Swatch(s.BadgeColour()) + " " + s.BadgeColour().Hex(),
				asset,
			})
		}
		fmt.Fprintln(os.Stdout, tui.RenderTable(
			[]string{"STYLE", "NAME", "SIZE", "BADGE BOX", "BASE", "BADGE", "ASSET"}, rows))
		fmt.Fprintln(os.Stdout)

		rows = rows[:0]
		for _, name := range colour.PaletteNames() {
			c := colour.Palette[name]
			rows = append(rows, []string{name, tui.Swatch(c) + " " + c.Hex()})
		}
		fmt.Fprintln(os.Stdout, tui.RenderTable([]string{"TINT", "COLOUR"}, rows))
		fmt.Fprintln(os.Stdout)

		rows = rows[:0]
		for _, w := range fonts.Weights() {
			found := "not found"
			if path, err := loc.Font(w); err == nil {
				found = path
				if filepath.Base(path) != w.Filename() {
					found += " (fallback)"
				}
			}
			rows = append(rows, []string{w.String(), found})
		}
		fmt.Fprintln(os.Stdout, tui.RenderTable([]string{"WEIGHT", "FONT"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fancyfolders/internal/config"
	"fancyfolders/internal/fonts"
	"fancyfolders/internal/generator"
	"fancyfolders/internal/output"
	"fancyfolders/internal/style"
	"fancyfolders/internal/tui"
	"fancyfolders/pkg/imgutil"
)

var (
	genStyle       string
	genText        string
	genImage       string
	genWeight      string
	genFont        string
	genScale       float64
	genTint        string
	genPreviewSize int
	genOut         string
	genICO         bool
	genCrop        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "Render one folder icon",
	Example: `  fancyfolders generate --text "Go" --tint teal
  fancyfolders generate --image logo.png --style catalina --out logo-folder.png --ico`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if genText != "" && genImage != "" {
			return fmt.Errorf("--text cannot be used with --image")
		}

		s, err := style.Parse(genStyle)
		if err != nil {
			return err
		}
		weight, err := fonts.ParseWeight(genWeight)
		if err != nil {
			return err
		}
		tint, err := parseTint(genTint)
		if err != nil {
			return err
		}
		if genScale < generator.MinScale || genScale > generator.MaxScale {
			return fmt.Errorf("--scale must be between %.1f and %.1f", generator.MinScale, generator.MaxScale)
		}

		req := generator.Request{
			Style:       s,
			Method:      generator.MethodNone,
			Scale:       genScale,
			Tint:        tint,
			Weight:      weight,
			FontPath:    genFont,
			PreviewSize: genPreviewSize,
		}
		switch {
		case genImage != "":
			img, kind, err := imgutil.Load(genImage)
			if err != nil {
				return err
			}
			config.Log.WithField("kind", kind.String()).Debug("badge image decoded")
			req.Method = generator.MethodImage
			req.Image = img
		case genText != "":
			req.Method = generator.MethodText
			req.Text = strings.ReplaceAll(genText, `\n`, "\n")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out, err := newGenerator().Generate(ctx, req)
		if err != nil {
			return err
		}
		if out.Status == generator.StatusCancelled {
			return fmt.Errorf("interrupted")
		}

		icon := out.Icon
		if genCrop {
			icon = output.Crop(icon, s.PreviewCrop())
		}

		dest := genOut
		if dest == "" {
			if dest, err = output.UniquePath(".", output.DefaultStem, ".png"); err != nil {
				return err
			}
		}
		written, err := output.WritePNG(dest, icon)
		if err != nil {
			return err
		}
		rows := []tui.SummaryRow{
			{Label: "Style", Value: s.DisplayName()},
			{Label: "Badge", Value: req.Method.String()},
			{Label: "Size", Value: fmt.Sprintf("%dx%d", icon.Bounds().Dx(), icon.Bounds().Dy())},
			{Label: "PNG", Value: fmt.Sprintf("%s (%s)", absPath(dest), tui.HumanBytes(written))},
		}

		if genICO {
			icoPath := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".ico"
			n, err := output.WriteICO(icoPath, out.Icon)
			if err != nil {
				return err
			}
			rows = append(rows, tui.SummaryRow{Label: "ICO", Value: fmt.Sprintf("%s (%s)", absPath(icoPath), tui.HumanBytes(n))})
		}

		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		return nil
	},
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func init() {
	generateCmd.Flags().StringVarP(&genStyle, "style", "s", style.Default.String(), "folder style: big-sur-light, big-sur-dark, catalina")
	generateCmd.Flags().StringVarP(&genText, "text", "t", "", `badge text (up to 25 characters, "\n" starts a new line)`)
	generateCmd.Flags().StringVarP(&genImage, "image", "i", "", "badge image (png, jpeg, gif, bmp, tiff, webp)")
	generateCmd.Flags().StringVarP(&genWeight, "weight", "w", fonts.DefaultWeight.String(), "SF Pro weight for text badges")
	generateCmd.Flags().StringVar(&genFont, "font", "", "font file to use instead of searching for SF Pro")
	generateCmd.Flags().Float64Var(&genScale, "scale", generator.DefaultScale, "badge scale (0.1 - 1.5)")
	generateCmd.Flags().StringVar(&genTint, "tint", "", "tint colour: a palette name or #rrggbb")
	generateCmd.Flags().IntVar(&genPreviewSize, "preview-size", 0, "render at this size instead of the native 1024px")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", `output PNG (default "untitled folder.png", numbered if taken)`)
	generateCmd.Flags().BoolVar(&genICO, "ico", false, "also write a 256px .ico next to the PNG")
	generateCmd.Flags().BoolVar(&genCrop, "crop", false, "crop the PNG to the visible folder")

	rootCmd.AddCommand(generateCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fancyfolders/internal/assets"
	"fancyfolders/internal/colour"
	"fancyfolders/internal/config"
	"fancyfolders/internal/generator"
)

var (
	cfgFile   string
	logLevel  string
	assetsDir string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fancyfolders",
	Short: "fancyfolders 📁 - macOS folder icons with custom badges",
	Long:  "fancyfolders 📁 draws text or image badges onto macOS folder icons, matching the look of the system's own folder glyphs.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if cmd.Flags().Changed("loglevel") {
			level = logLevel
		}
		if err := config.SetLogLevel(level); err != nil {
			return fmt.Errorf("--loglevel: %w", err)
		}

		if assetsDir != "" {
			cfg.AssetsDir = assetsDir
		}
		config.Log.WithField("assets", cfg.AssetsDir).Debug("configuration loaded")
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fancyfolders.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "info", "log level: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "", "directory holding the folder images and bundled fonts")
}

func newGenerator() *generator.Generator {
	loc := &assets.Locator{Dir: cfg.AssetsDir, FontDirs: cfg.FontDirs}
	return generator.New(loc,
		generator.WithTuning(cfg.Tuning),
		generator.WithLogger(config.Log),
	)
}

func parseTint(value string) (*colour.RGB, error) {
	if value == "" {
		return nil, nil
	}
	c, err := colour.Lookup(value)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

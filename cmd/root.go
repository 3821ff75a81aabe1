package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/collage/internal/assemble"
	"github.com/kiesman99/collage/internal/config"
	"github.com/kiesman99/collage/internal/logging"
	"github.com/kiesman99/collage/pkg/collage"
	"github.com/kiesman99/collage/pkg/raster"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=...".
var version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "collage",
	Short: "Compose an anchor image and panels into a grid collage",
	Long: `collage places one anchor image and any number of panel images on a grid.

Every image is scaled to fill its cell and center-cropped. Panels fill the
remaining cells in row-major order; cells without a panel stay blank and
panels beyond the grid's capacity are ignored. Captions can be drawn on a
semi-transparent band at the bottom of each panel.

Input may be PNG, JPEG, GIF, WebP, BMP or TIFF. Output is PNG or JPEG.

Examples:
  # 2x2 grid with the anchor in the top-left corner
  collage --anchor me.png --panel a.png --panel b.png --panel c.png -o out.png

  # Pick the layout from the number of captions and draw them
  collage -a me.png -p a.png -p b.png -c "first" -c "second" --suggest --captions -o out.png

  # Centered anchor on a wide 3x3 canvas, written as JPEG
  collage -a me.png -p a.png -l 3x3 --anchor-position center --width 1920 --height 1080 -f jpeg -o out.jpg

  # List the layouts
  collage layouts

  # Start HTTP server
  collage serve --port 8080`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := logging.New(os.Stderr, logging.Level(verbose))
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without an anchor there is nothing to compose
		if anchor, _ := cmd.Flags().GetString("anchor"); anchor == "" {
			return cmd.Help()
		}
		return runCollage(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.collage.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Inputs
	rootCmd.Flags().StringP("anchor", "a", "", "anchor image (required)")
	rootCmd.Flags().StringArrayP("panel", "p", nil, "panel image, repeatable, placed in order")
	rootCmd.Flags().StringArrayP("caption", "c", nil, "caption for the panel at the same position, repeatable")
	rootCmd.Flags().Bool("skip-invalid", false, "skip panels that cannot be decoded instead of failing")

	// Output options
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().StringP("format", "f", "png", "output format (png|jpeg)")
	rootCmd.Flags().IntP("quality", "q", raster.DefaultJPEGQuality, "JPEG quality (1-100)")

	// Layout options
	d := collage.DefaultLayoutConfig()
	rootCmd.Flags().StringP("layout", "l", string(d.Layout), "grid layout (see 'collage layouts')")
	rootCmd.Flags().Bool("suggest", false, "pick the layout from the number of captions")
	rootCmd.Flags().String("anchor-position", string(d.Anchor), "cell holding the anchor image")
	rootCmd.Flags().Int("padding", d.Padding, "gap between cells and around the edge in pixels")
	rootCmd.Flags().Int("border-width", d.BorderWidth, "border inside each cell in pixels")
	rootCmd.Flags().String("border-color", d.BorderColor.String(), "border color (#rrggbb or r,g,b)")
	rootCmd.Flags().String("background-color", d.BackgroundColor.String(), "background color (#rrggbb or r,g,b)")
	rootCmd.Flags().Int("width", d.OutputSize.Width, "output width in pixels")
	rootCmd.Flags().Int("height", d.OutputSize.Height, "output height in pixels")

	// Caption options
	rootCmd.Flags().Bool("captions", d.ShowCaptions, "draw panel captions")
	rootCmd.Flags().Int("caption-font-size", d.CaptionFontSize, "caption font size in points")
	rootCmd.Flags().String("caption-color", d.CaptionColor.String(), "caption text color")
	rootCmd.Flags().Int("caption-opacity", int(d.CaptionBgOpacity), "caption band opacity (0-255)")
	rootCmd.Flags().String("anchor-label", d.AnchorLabel, "caption drawn on the anchor cell")

	rootCmd.Flags().Int("workers", 0, "cells rendered concurrently (default: number of CPUs)")

	// Bind flags to viper for root command
	for _, key := range []string{
		config.KeyFormat, config.KeyQuality, config.KeyLayout, config.KeyAnchorPosition,
		config.KeyPadding, config.KeyBorderWidth, config.KeyBorderColor, config.KeyBackgroundColor,
		config.KeyWidth, config.KeyHeight, config.KeyCaptions, config.KeyCaptionFontSize,
		config.KeyCaptionColor, config.KeyCaptionOpacity, config.KeyAnchorLabel, config.KeyWorkers,
	} {
		cobra.CheckErr(viper.BindPFlag(key, rootCmd.Flags().Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".collage" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".collage")
	}

	config.Setup(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runCollage(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	anchor, _ := cmd.Flags().GetString("anchor")
	panels, _ := cmd.Flags().GetStringArray("panel")
	captions, _ := cmd.Flags().GetStringArray("caption")
	skipInvalid, _ := cmd.Flags().GetBool("skip-invalid")
	output, _ := cmd.Flags().GetString("output")

	// Positional arguments are extra panels
	panels = append(panels, args...)

	cfg, warnings, err := config.LayoutConfig(viper.GetViper())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	if suggest, _ := cmd.Flags().GetBool("suggest"); suggest {
		cfg.Layout = collage.SuggestLayout(len(captions))
		logger.Info("suggested layout", "captions", len(captions), "layout", cfg.Layout)
	}
	if len(captions) > len(panels) {
		logger.Warn("more captions than panels, extra captions ignored", "captions", len(captions), "panels", len(panels))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := raster.ParseFormat(viper.GetString(config.KeyFormat))
	if err != nil {
		return err
	}

	assembler := assemble.NewAssembler(&assemble.Options{
		Output:            output,
		Format:            format,
		Quality:           viper.GetInt(config.KeyQuality),
		Workers:           viper.GetInt(config.KeyWorkers),
		SkipInvalidPanels: skipInvalid,
	}, logger)

	return assembler.AssembleFiles(cmd.Context(), anchor, panels, captions, cfg)
}

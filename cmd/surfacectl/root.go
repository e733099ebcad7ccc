package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-auto/surface"
	"github.com/go-theft-auto/surface/scene"
)

var log = logrus.New()

// Settings resolved by the root command before any subcommand runs.
var (
	cfg          = surface.DefaultConfig()
	outputFormat = "yaml"
)

func init() {
	// load the environment variables
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using the process environment")
	}

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

var rootCmd = &cobra.Command{
	Use:   "surfacectl",
	Short: "Drive the surface input engine from scripts or a websocket",
	Long: `surfacectl loads a YAML scene of widgets and routes input events
through the surface engine, reporting every callback the widgets receive.

Engine settings come from a TOML file given with --config or the
SURFACE_CONFIG environment variable (a .env file is honored).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML engine config (default $SURFACE_CONFIG)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log engine routing decisions")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		if path == "" {
			path = os.Getenv("SURFACE_CONFIG")
		}
		cfg = surface.DefaultConfig()
		if path != "" {
			c, err := surface.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = c
			log.WithField("path", path).Debug("config loaded")
		}

		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			cfg.Verbose = true
		}
		if cfg.Verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml", "json":
			outputFormat = format
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}

// newEngine builds an engine for sc on host with the loaded config.
func newEngine(sc *scene.Scene, host surface.Host) (*surface.Engine, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		surface.WithRoot(sc.Root()),
		surface.WithSurface(sc),
		surface.WithHost(host),
	)
	e, err := surface.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	sc.Attach(e)
	return e, nil
}

// loadScene reads a scene file with a fresh mask cache.
func loadScene(path string) (*scene.Scene, error) {
	masks, err := scene.NewMaskCache(scene.DefaultMaskCacheSize)
	if err != nil {
		return nil, err
	}
	return scene.Load(path, scene.WithMasks(masks))
}

// printResult writes v to w in the selected output format.
func printResult(w io.Writer, v interface{}) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

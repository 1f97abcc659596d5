package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/lvillar/canvastable"
	"github.com/lvillar/canvastable/surface"
)

// Version is set via -ldflags during build.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "canvastable",
	Short:         "Render tables to images",
	Long:          "Lay out table documents (YAML or JSON) and render them to PNG, or serve rendering over MCP.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagFormat  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "json", "Output format: json|yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "canvastable:", err)
		os.Exit(1)
	}
}

// cliEnv carries what every subcommand needs: the environment config, a
// logger and the base settings documents are merged over.
type cliEnv struct {
	conf     *config.Config
	log      logger.Logger
	settings canvastable.Settings
}

// loadEnv reads CANVASTABLE_* variables. When console is false the logger
// never writes to stdout, which the mcp command owns.
func loadEnv(console bool) *cliEnv {
	conf := config.New(config.WithEnvPrefix("CANVASTABLE"))
	if flagVerbose {
		conf.Set("LOG_LEVEL", "DEBUG")
	}
	if !console {
		conf.Set("Logger.consoleEnabled", false)
	}
	return &cliEnv{
		conf:     conf,
		log:      logger.NewFactory(conf).NewLogger().Child("canvastable"),
		settings: baseSettings(conf),
	}
}

func baseSettings(conf *config.Config) canvastable.Settings {
	s := canvastable.DefaultSettings()
	s.DevicePixelRatio = conf.GetFloat64("devicePixelRatio", s.DevicePixelRatio)
	s.MinCharWidth = conf.GetInt("minCharWidth", s.MinCharWidth)
	s.Background = surface.Color(conf.GetString("background", string(s.Background)))
	s.Fit = conf.GetBool("fit", s.Fit)
	s.HideHeader = conf.GetBool("hideHeader", s.HideHeader)
	s.Fader.Size = conf.GetFloat64("fader.size", s.Fader.Size)
	return s
}

func (e *cliEnv) tableOptions() []canvastable.Option {
	return []canvastable.Option{
		canvastable.WithLogger(e.log),
		canvastable.WithBaseSettings(e.settings),
	}
}

// printValue writes v as indented JSON or as YAML.
func printValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

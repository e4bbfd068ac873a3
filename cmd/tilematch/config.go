package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tilematch/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the other commands would run with, after the
config file and --fps are applied.

With --defaults the built-in config file is printed as shipped, comments
included. Save it and pass it back with --config to start a custom setup.

Examples:
  tilematch config
  tilematch config --config ./tilematch.yaml
  tilematch config --defaults > ~/.tilematch/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in config file")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagDefaults {
		if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
			fatalf("%v", err)
		}
		return
	}
	if err := writeConfig(os.Stdout, loadConfig()); err != nil {
		fatalf("%v", err)
	}
}

// writeConfig encodes cfg in the config file format.
func writeConfig(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

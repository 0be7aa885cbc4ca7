package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lanes/internal/config"
	"github.com/vovakirdan/tui-lanes/internal/registry"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the resolved tuning config",
	Long: `Prints the configuration a variant would run with, after the variant
preset, the config file, LANES_* environment variables and --preset have
been applied. With --defaults, prints the embedded default file instead.

Examples:
  lanes config
  lanes config lanes_tight --preset classic
  lanes config --defaults > ~/.lanes/configs/lanes.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config file")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lanes config YAML")
	configCmd.Flags().StringVar(&flagPreset, "preset", "", "Tuning preset: classic, tight")
}

// configurable is implemented by games that resolve a full config.
type configurable interface {
	LoadConfig() (config.LanesConfig, error)
}

func runConfig(cmd *cobra.Command, args []string) {
	if err := printConfig(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printConfig(args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	gameID := "lanes"
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'lanes list' to see available games)", err)
	}
	cg, ok := game.(configurable)
	if !ok {
		return fmt.Errorf("game %q has no tuning config", gameID)
	}
	cfg, err := cg.LoadConfig()
	if err != nil {
		return err
	}

	if path, found := config.Locate(flagConfig); found {
		fmt.Printf("# %s (%s)\n", gameID, path)
	} else {
		fmt.Printf("# %s (built-in defaults)\n", gameID)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/filmdash/internal/config"
	"github.com/davetashner/filmdash/internal/redact"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify filmdash configuration",
	Long: `View and modify filmdash configuration.

Filmdash reads .filmdash.yaml (or .filmdash.toml) from the working directory.
A global config at ~/.config/filmdash/config.yaml provides defaults.
Command-line flags override the repo config, which overrides the global one.

Note: config set does a YAML round-trip and will not preserve comments.`,
}

// configShowCmd prints the effective settings.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Print every setting after applying defaults, the global config and the repo config.",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// configGetCmd retrieves a configuration value by key.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by key.

Examples:
  filmdash config get dataset
  filmdash config get rating_edges
  filmdash config get --global listen`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, float, or string. rating_edges and
palette take comma-separated lists.
By default, writes to .filmdash.yaml in the current directory.
Use --global to write to ~/.config/filmdash/config.yaml.

Examples:
  filmdash config set dataset movies.csv
  filmdash config set watch true
  filmdash config set rating_edges 8,8.5,9
  filmdash config set --global listen 0.0.0.0:8050`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the repo config or the global config. Repo values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

// configValidateCmd checks the config files.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration files",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/filmdash/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/filmdash/config.yaml)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configValidateCmd)
}

// settingsView is the YAML shape of config show.
type settingsView struct {
	Dataset     string    `yaml:"dataset"`
	Listen      string    `yaml:"listen"`
	Watch       bool      `yaml:"watch"`
	AssetsHost  string    `yaml:"assets_host"`
	Format      string    `yaml:"format"`
	RatingEdges []float64 `yaml:"rating_edges,flow"`
	Palette     []string  `yaml:"palette,flow,omitempty"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(settingsView(s))
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), redact.String(string(data)))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	if configGlobal {
		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		cfg = global
	} else {
		global, repo, err := loadFileConfigs()
		if err != nil {
			return err
		}
		cfg = config.Merge(global, repo)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return err
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	// Determine target file path.
	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	// Load existing file as raw map.
	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, redact.String(rawValue))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	global, repo, err := loadFileConfigs()
	if err != nil {
		return err
	}
	globalMap, err := config.ToMap(global)
	if err != nil {
		return err
	}
	repoMap, err := config.ToMap(repo)
	if err != nil {
		return err
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for k, v := range config.FlattenMap(globalMap, "") {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range config.FlattenMap(repoMap, "") {
		seen[k] = entry{value: v, source: "repo"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'filmdash config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)
	for _, k := range keys {
		e := seen[k]
		value := redact.String(fmt.Sprint(e.value))
		_, _ = fmt.Fprintf(w, "%s = %s %s\n", k, value, formatSource(e.source, globalColor, repoColor))
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	global, repo, err := loadFileConfigs()
	if err != nil {
		return exitError(ExitInvalidArgs, "filmdash: %v", err)
	}
	for _, c := range []struct {
		name string
		cfg  *config.Config
	}{{"global", global}, {"repo", repo}} {
		if err := config.Validate(c.cfg); err != nil {
			return exitError(ExitInvalidArgs, "filmdash: %s %v", c.name, err)
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}

// printValue outputs a value: scalars as plain text, lists as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(v); err != nil {
			return err
		}
		_ = enc.Close()
		_, _ = fmt.Fprint(cmd.OutOrStdout(), buf.String())
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), redact.String(fmt.Sprint(v)))
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "repo":
		return repoColor.Sprintf("(repo)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}

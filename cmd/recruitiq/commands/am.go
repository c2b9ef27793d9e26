package commands

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/recruitiq/am"
	"github.com/teranos/recruitiq/display"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.AM + " Manage RecruitIQ configuration",
	Long: sym.AM + ` am - Manage RecruitIQ configuration

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/recruitiq/config.toml)
3. User config (~/.recruitiq/am.toml)
4. Project config (./am.toml, searched up from the working directory)
5. Environment variables (RECRUITIQ_* prefix, e.g. RECRUITIQ_SCRAPE_DELAY_MS)
6. Command line flags

Examples:
  recruitiq am show                    # Show current configuration
  recruitiq am show --format json      # Show configuration in JSON format
  recruitiq am get scrape.delay_ms     # Get specific config value
  recruitiq am set scrape.companies stripe,gitlab
  recruitiq am validate                # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration merged from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., database.path, scrape.delay_ms)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a value to the user config file",
	Long: `Write a value to ~/.recruitiq/am.toml (or --file). Integers and booleans
are stored typed; comma-separated values become lists. The previous file is
kept as a rotating backup.`,
	Args: cobra.ExactArgs(2),
	RunE: runAmSet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and the source of every effective setting.`,
	RunE: runAmWhere,
}

var (
	configFormat string
	configFile   string
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amSetCmd.Flags().StringVar(&configFile, "file", "", "Config file to write (default ~/.recruitiq/am.toml)")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amSetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

// renderConfig marshals cfg in the requested format
func renderConfig(cfg *am.Config, format string) (string, error) {
	switch format {
	case "json":
		data, err := display.MarshalJSON(cfg)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal config to JSON")
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal config to YAML")
		}
		return "# RecruitIQ configuration\n" + string(data), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal config to TOML")
		}
		return "# RecruitIQ configuration\n" + string(data), nil
	default:
		return "", errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	out, err := renderConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !am.GetViper().IsSet(key) {
		return errors.WithHint(errors.NewNotFoundError("configuration key %q not found", key),
			"run 'recruitiq am show' to list every key")
	}
	fmt.Println(am.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		var err error
		if path, err = am.UserConfigPath(); err != nil {
			return err
		}
	}
	if err := am.SetValue(path, args[0], args[1]); err != nil {
		return err
	}

	// Reload so the written value is validated with everything else
	am.Reset()
	if _, err := loadConfig(); err != nil {
		return errors.WithHintf(err, "the value was written to %s; fix or revert it there", path)
	}
	pterm.Success.Printfln("%s = %s written to %s", args[0], args[1], path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}

	fmt.Println("Configuration cascade (later overrides earlier):")
	fmt.Println("  1. [DEFAULT]  Built-in defaults")
	fmt.Println("  2. [SYSTEM]   /etc/recruitiq/config.toml")
	fmt.Println("  3. [USER]     ~/.recruitiq/am.toml")
	fmt.Println("  4. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Println("  5. [ENV]      " + am.EnvPrefix + "_* environment variables")
	fmt.Println()

	type fileGroup struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}
	groups := make(map[string]*fileGroup)
	for _, setting := range intro.Settings {
		key := setting.SourcePath
		if key == "" || setting.Source == am.SourceEnvironment {
			key = string(setting.Source)
		}
		g, ok := groups[key]
		if !ok {
			g = &fileGroup{source: setting.Source, path: setting.SourcePath}
			if setting.Source == am.SourceEnvironment {
				g.path = ""
			}
			groups[key] = g
		}
		g.settings = append(g.settings, setting)
	}

	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceEnvironment,
	}

	fmt.Println("Active configuration:")
	for _, source := range sourceOrder {
		var ordered []*fileGroup
		for _, g := range groups {
			if g.source == source {
				ordered = append(ordered, g)
			}
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].path < ordered[j].path })

		for _, g := range ordered {
			switch {
			case g.path != "":
				fmt.Printf("\n%s: %d settings from %s\n", source, len(g.settings), g.path)
			case source == am.SourceEnvironment:
				fmt.Printf("\n%s: %d settings from environment variables\n", source, len(g.settings))
			default:
				fmt.Printf("\n%s: %d settings\n", source, len(g.settings))
			}
			for _, setting := range g.settings {
				value := util.Truncate(fmt.Sprintf("%v", setting.Value), 50)
				if source == am.SourceEnvironment {
					fmt.Printf("  %s = %s (%s)\n", setting.Key, value, am.EnvKey(setting.Key))
					continue
				}
				fmt.Printf("  %s = %s\n", setting.Key, value)
			}
		}
	}
	return nil
}

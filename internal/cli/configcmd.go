package cli

import (
	"fmt"
	"os"

	"github.com/Versatly/zoho-mail-cli/internal/config"
	"github.com/Versatly/zoho-mail-cli/internal/output"
)

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., region, account_id)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return output.NewCLIError(fmt.Sprintf("Unknown config key: %s", cmd.Key))
	}

	fmt.Println(value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return output.NewCLIError(fmt.Sprintf("Unknown config key: %s", cmd.Key))
	}

	if cmd.Key == "region" {
		if _, err := config.GetRegion(cmd.Value); err != nil {
			return output.NewCLIError(err.Error())
		}
	}

	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to set config: %v", err))
	}

	fmt.Fprintf(os.Stderr, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return output.NewCLIError(fmt.Sprintf("Unknown config key: %s", cmd.Key))
	}

	if err := cfg.Unset(cmd.Key); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to unset config: %v", err))
	}

	fmt.Fprintf(os.Stderr, "Unset %s\n", cmd.Key)
	return nil
}

// ConfigListCmd implements config list command
type ConfigListCmd struct{}

// Run executes the list command
func (cmd *ConfigListCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	type configItem struct {
		Key   string
		Value string
	}

	items := []configItem{
		{Key: "region", Value: cfg.Region},
		{Key: "account_id", Value: cfg.AccountID},
		{Key: "user_id", Value: cfg.UserID},
		{Key: "default_folder", Value: cfg.DefaultFolder},
		{Key: "default_output", Value: cfg.DefaultOutput},
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}

	return fp.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	path := config.ConfigPath()

	fmt.Println(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(os.Stderr, "(file exists)\n")
	}

	return nil
}

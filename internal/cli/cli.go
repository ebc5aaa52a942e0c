package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/willabides/kongplete"

	"github.com/Versatly/zoho-mail-cli/internal/config"
	"github.com/Versatly/zoho-mail-cli/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Auth    AuthCmd    `cmd:"" help:"Authentication commands"`
	Mail    MailCmd    `cmd:"" help:"Message operations"`
	Folders FoldersCmd `cmd:"" help:"Manage mail folders"`
	Labels  LabelsCmd  `cmd:"" help:"Manage mail labels"`
	Config  ConfigCmd  `cmd:"" help:"Configuration commands"`
	Version VersionCmd `cmd:"" help:"Show version information"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// BeforeApply hook runs before any command execution.
// It loads config, resolves region, creates the formatter, and binds
// dependencies to the kong context.
func (c *CLI) BeforeApply(ctx *kong.Context) error {
	// Load config from XDG path (returns defaults if missing)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Resolve region: CLI flag > config > default
	region := c.Region
	if region == "" && cfg.Region != "" {
		region = cfg.Region
	}
	if region == "" {
		region = config.DefaultRegion
	}
	cfg.Region = region

	// Resolve output the same way: flag > config > TTY detection
	c.ApplyOutputDefault(cfg.DefaultOutput)

	log := zerolog.Nop()
	if c.Debug {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	var formatter output.Formatter
	if c.ResolvedOutput() == "json" {
		formatter = output.NewJSON(c.ResultsOnly)
	} else {
		formatter = output.New(c.ResolvedOutput())
	}
	fp := &FormatterProvider{Formatter: formatter}

	sp := NewServiceProvider(cfg, &c.Globals, log)

	ctx.Bind(cfg)
	ctx.Bind(fp)
	ctx.Bind(sp)
	ctx.Bind(&c.Globals)

	return nil
}

// AuthCmd holds authentication subcommands
type AuthCmd struct {
	Login      AuthLoginCmd      `cmd:"" help:"Connect to Zoho Mail via the OAuth helper"`
	Status     AuthStatusCmd     `cmd:"" help:"Show connection status"`
	Logout     AuthLogoutCmd     `cmd:"" help:"Disconnect and clear local configuration"`
	SetRegion  AuthSetRegionCmd  `cmd:"" name:"set-region" help:"Set the Zoho region domain"`
	SetAccount AuthSetAccountCmd `cmd:"" name:"set-account" help:"Set the active mail account"`
}

// MailCmd holds message subcommands
type MailCmd struct {
	List       MailListCmd       `cmd:"" help:"List messages in a folder"`
	Read       MailReadCmd       `cmd:"" help:"Show message content"`
	Search     MailSearchCmd     `cmd:"" help:"Search messages"`
	Send       MailSendCmd       `cmd:"" help:"Send a message"`
	Move       MailMoveCmd       `cmd:"" help:"Move messages to a folder"`
	Delete     MailDeleteCmd     `cmd:"" help:"Delete a message permanently"`
	Flag       MailFlagCmd       `cmd:"" help:"Flag messages"`
	Unflag     MailUnflagCmd     `cmd:"" help:"Remove flag from messages"`
	Archive    MailArchiveCmd    `cmd:"" help:"Archive messages"`
	Unarchive  MailUnarchiveCmd  `cmd:"" help:"Move messages out of the archive"`
	Spam       MailSpamCmd       `cmd:"" help:"Mark messages as spam"`
	Unspam     MailUnspamCmd     `cmd:"" help:"Mark messages as not spam"`
	MarkRead   MailMarkReadCmd   `cmd:"" name:"mark-read" help:"Mark messages as read"`
	MarkUnread MailMarkUnreadCmd `cmd:"" name:"mark-unread" help:"Mark messages as unread"`
	Label      MailLabelCmd      `cmd:"" help:"Add a label to messages"`
	Unlabel    MailUnlabelCmd    `cmd:"" help:"Remove a label from messages"`
}

// FoldersCmd holds folder subcommands
type FoldersCmd struct {
	List     FoldersListCmd     `cmd:"" help:"List all folders"`
	Create   FoldersCreateCmd   `cmd:"" help:"Create a folder"`
	Rename   FoldersRenameCmd   `cmd:"" help:"Rename a folder"`
	Move     FoldersMoveCmd     `cmd:"" help:"Move a folder under a new parent"`
	Empty    FoldersEmptyCmd    `cmd:"" help:"Remove every message in a folder"`
	MarkRead FoldersMarkReadCmd `cmd:"" name:"mark-read" help:"Mark every message in a folder as read"`
	Delete   FoldersDeleteCmd   `cmd:"" help:"Delete a folder permanently"`
}

// LabelsCmd holds label subcommands
type LabelsCmd struct {
	List   LabelsListCmd   `cmd:"" help:"List all labels"`
	Create LabelsCreateCmd `cmd:"" help:"Create a label"`
	Update LabelsUpdateCmd `cmd:"" help:"Update a label's name or color"`
	Delete LabelsDeleteCmd `cmd:"" help:"Delete a label permanently"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd   `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd   `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a configuration value"`
	List  ConfigListCmd  `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd  `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Println("zmail version " + ctx.Model.Vars()["version"])
	return nil
}

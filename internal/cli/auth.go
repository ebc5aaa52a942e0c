package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Versatly/zoho-mail-cli/internal/config"
	"github.com/Versatly/zoho-mail-cli/internal/output"
	"github.com/Versatly/zoho-mail-cli/pkg/browser"
)

const (
	loginPollInterval = 2 * time.Second
	loginPollAttempts = 60
)

// AuthLoginCmd implements the auth login command
type AuthLoginCmd struct {
	User    string `help:"Helper user id for the connection" default:"default"`
	Account string `help:"Email address of the account to activate (default: first account)"`
	NoOpen  bool   `help:"Print the connect link without opening a browser" name:"no-open"`
}

// Run executes the login command
func (cmd *AuthLoginCmd) Run(cfg *config.Config, fp *FormatterProvider, sp *ServiceProvider) error {
	ctx := context.Background()
	b := sp.Bridge()

	status := b.CheckConnection(ctx, cmd.User)
	if status == nil || !status.Connected {
		link := b.ConnectLink(ctx, cmd.User)
		if link == "" {
			return output.NewCLIError("could not obtain a connect link from the helper").
				WithHint("Check that the helper binary is installed and on PATH")
		}

		fmt.Fprintf(os.Stderr, "Open this link to authorize Zoho Mail:\n\n  %s\n\n", link)
		if !cmd.NoOpen {
			if err := browser.Open(link); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
			}
		}

		fmt.Fprintf(os.Stderr, "Waiting for authorization...\n")
		if !waitForConnection(ctx, sp, cmd.User) {
			return output.NewCLIError("authorization was not completed in time").
				WithHint("Rerun: zmail auth login")
		}
	}

	cfg.UserID = cmd.User

	// Resolve the account id through the fresh connection
	client, err := sp.accountClient(cmd.User)
	if err != nil {
		return err
	}
	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return wrapServiceError("list accounts", err)
	}
	if len(accounts) == 0 {
		return output.NewCLIError("the connection has no mail accounts")
	}

	selected := accounts[0]
	if cmd.Account != "" {
		found := false
		for _, acct := range accounts {
			if acct.EmailAddress == cmd.Account {
				selected = acct
				found = true
				break
			}
		}
		if !found {
			return output.NewCLIError(fmt.Sprintf("no account with address %q", cmd.Account))
		}
	}

	cfg.AccountID = selected.AccountID
	if err := cfg.Save(); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to save config: %v", err))
	}

	fmt.Fprintf(os.Stderr, "Connected as %s\n", selected.EmailAddress)
	fmt.Fprintf(os.Stderr, "Region: %s\n", cfg.Region)
	return nil
}

// waitForConnection polls the helper until the connection becomes active
func waitForConnection(ctx context.Context, sp *ServiceProvider, userID string) bool {
	for i := 0; i < loginPollAttempts; i++ {
		time.Sleep(loginPollInterval)
		if st := sp.Bridge().CheckConnection(ctx, userID); st != nil && st.Connected {
			return true
		}
	}
	return false
}

// AuthStatusCmd implements the auth status command
type AuthStatusCmd struct{}

// connectionReport is the status row shown to the user
type connectionReport struct {
	Connected bool   `json:"connected"`
	AccountID string `json:"accountId"`
	Account   string `json:"account"`
	Healthy   bool   `json:"healthy"`
	Region    string `json:"region"`
}

// Run executes the status command. It degrades to "not connected" on any
// helper failure; a status probe never exits non-zero.
func (cmd *AuthStatusCmd) Run(cfg *config.Config, fp *FormatterProvider, sp *ServiceProvider) error {
	report := connectionReport{Region: cfg.Region}

	if cfg.IsConfigured() {
		report.AccountID = cfg.AccountID
		if st := sp.Bridge().CheckConnection(context.Background(), cfg.UserID); st != nil {
			report.Connected = st.Connected
			report.Account = st.Account
			report.Healthy = st.Healthy
		}
	}

	return fp.Formatter.Print(report)
}

// AuthLogoutCmd implements the auth logout command
type AuthLogoutCmd struct{}

// Run executes the logout command
func (cmd *AuthLogoutCmd) Run(cfg *config.Config, fp *FormatterProvider, sp *ServiceProvider) error {
	userID := cfg.UserID

	cfg.Clear()
	if err := cfg.Save(); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to clear config: %v", err))
	}

	if userID != "" && !sp.Bridge().Disconnect(context.Background(), userID) {
		return output.NewCLIError("could not disconnect the helper session").
			WithHint("Local configuration was cleared anyway")
	}

	fmt.Fprintf(os.Stderr, "Logged out\n")
	return nil
}

// AuthSetRegionCmd implements the auth set-region command
type AuthSetRegionCmd struct {
	Region string `arg:"" help:"Region domain (zoho.com, zoho.eu, zoho.in, zoho.com.au, zoho.jp)"`
}

// Run executes the set-region command
func (cmd *AuthSetRegionCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := config.GetRegion(cmd.Region); err != nil {
		return output.NewCLIError(err.Error())
	}

	cfg.Region = cmd.Region
	if err := cfg.Save(); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to save config: %v", err))
	}

	fp.Formatter.PrintMessage("Region set to " + cmd.Region)
	return nil
}

// AuthSetAccountCmd implements the auth set-account command
type AuthSetAccountCmd struct {
	AccountID string `arg:"" help:"Mail account id"`
	User      string `help:"Helper user id for the connection"`
}

// Run executes the set-account command
func (cmd *AuthSetAccountCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if cmd.AccountID == "" {
		return output.NewCLIError("account id must not be empty")
	}

	cfg.AccountID = cmd.AccountID
	if cmd.User != "" {
		cfg.UserID = cmd.User
	}
	if err := cfg.Save(); err != nil {
		return output.NewCLIError(fmt.Sprintf("Failed to save config: %v", err))
	}

	fp.Formatter.PrintMessage("Account set to " + cmd.AccountID)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Versatly/zoho-mail-cli/internal/bridge"
	"github.com/Versatly/zoho-mail-cli/internal/config"
	"github.com/Versatly/zoho-mail-cli/internal/output"
	"github.com/Versatly/zoho-mail-cli/internal/zmail"
)

// ServiceProvider lazily creates and caches the auth bridge and mail service.
type ServiceProvider struct {
	cfg     *config.Config
	globals *Globals
	log     zerolog.Logger

	bridgeOnce sync.Once
	bridge     *bridge.Bridge

	mailOnce sync.Once
	mail     zmail.MailService
	mailErr  error
}

// NewServiceProvider creates a ServiceProvider with the given config.
func NewServiceProvider(cfg *config.Config, globals *Globals, log zerolog.Logger) *ServiceProvider {
	return &ServiceProvider{cfg: cfg, globals: globals, log: log}
}

// Bridge returns the auth bridge, creating it on first call. Auth commands
// use it directly; everything else goes through Mail.
func (sp *ServiceProvider) Bridge() *bridge.Bridge {
	sp.bridgeOnce.Do(func() {
		if sp.bridge != nil {
			return // injected by a test
		}
		runner := bridge.NewRunner(sp.globals.Helper, bridge.DefaultTimeout, sp.log)
		sp.bridge = bridge.New(runner, sp.log)
	})
	return sp.bridge
}

// Mail returns the MailService, creating it on first call. It verifies the
// config names an account and the helper reports an active connection before
// any API command runs.
func (sp *ServiceProvider) Mail(ctx context.Context) (zmail.MailService, error) {
	sp.mailOnce.Do(func() {
		if sp.mail != nil {
			return // injected by a test
		}

		if !sp.cfg.IsConfigured() {
			sp.mailErr = output.NewCLIError("no account configured").
				WithHint("Run: zmail auth login")
			return
		}

		status := sp.Bridge().CheckConnection(ctx, sp.cfg.UserID)
		if status == nil || !status.Connected {
			sp.mailErr = output.NewCLIError("not connected to Zoho Mail").
				WithHint("Run: zmail auth login")
			return
		}

		region, err := sp.cfg.GetRegionConfig()
		if err != nil {
			sp.mailErr = output.NewCLIError(err.Error()).
				WithHint("Run: zmail auth set-region <region>")
			return
		}

		var transport zmail.Transport
		if sp.globals.Legacy {
			transport = zmail.NewLegacyTransport(sp.Bridge(), sp.cfg.UserID)
		} else {
			transport = zmail.NewProxyTransport(sp.Bridge(), sp.cfg.UserID, region.MailBase)
		}

		sp.mail = zmail.NewClient(transport, sp.cfg.AccountID, sp.log)
	})
	return sp.mail, sp.mailErr
}

// accountClient builds a client without a bound account id, for account
// discovery during login before any config exists.
func (sp *ServiceProvider) accountClient(userID string) (*zmail.Client, error) {
	region, err := sp.cfg.GetRegionConfig()
	if err != nil {
		return nil, output.NewCLIError(err.Error()).
			WithHint("Run: zmail auth set-region <region>")
	}
	transport := zmail.NewProxyTransport(sp.Bridge(), userID, region.MailBase)
	return zmail.NewClient(transport, "", sp.log), nil
}

// wrapServiceError converts service-layer failures into CLI errors with a
// remediation hint where one exists.
func wrapServiceError(action string, err error) error {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var capErr *zmail.CapabilityError
	if errors.As(err, &capErr) {
		return output.NewCLIError(capErr.Error()).
			WithHint("Rerun without --legacy, or upgrade the helper")
	}

	var valErr *zmail.ValidationError
	if errors.As(err, &valErr) {
		return output.NewCLIError(valErr.Error())
	}

	var procErr *bridge.ProcessError
	if errors.As(err, &procErr) {
		return output.NewCLIError(fmt.Sprintf("Failed to %s: %v", action, err)).
			WithHint("Check that the helper binary is installed and on PATH")
	}

	return output.NewCLIError(fmt.Sprintf("Failed to %s: %v", action, err))
}

package fugle

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/thejimmylin/f5project/internal/cert"
)

// Account is an authenticated broker session.
type Account struct {
	client       *Client
	entry        string
	id           AccountID
	token        string
	marketAPIKey string
}

func (a *Account) ID() AccountID {
	return a.id
}

type loginRequest struct {
	Account      string `json:"account"`
	Password     string `json:"password"`
	Cert         string `json:"cert"`
	CertPassword string `json:"cert_password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates with the config file generated by Config.WriteFiles.
// Passwords are taken from creds, never from the config file.
func (c *Client) Login(ctx context.Context, configPath, marketAPIKey string, creds CredentialSource) (*Account, error) {
	fc, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	password, err := creds.Get(NamespaceAccount, fc.Account)
	if err != nil {
		return nil, fmt.Errorf("get account password: %w", err)
	}
	certPassword, err := creds.Get(NamespaceCert, fc.Account)
	if err != nil {
		return nil, fmt.Errorf("get cert password: %w", err)
	}
	certString, err := cert.Encode(fc.CertPath)
	if err != nil {
		return nil, err
	}

	entry := strings.TrimRight(fc.Entry, "/")
	header := http.Header{}
	header.Set("X-Api-Key", fc.APIKey)
	header.Set("X-Api-Secret", fc.APISecret)
	header.Set("X-Market-Api-Key", marketAPIKey)

	var resp loginResponse
	err = c.doJSON(ctx, http.MethodPost, entry+"/login", header, loginRequest{
		Account:      fc.Account,
		Password:     password,
		Cert:         certString,
		CertPassword: certPassword,
	}, &resp)
	if err != nil {
		if isStatus(err, http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login call: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login call: empty session token")
	}

	c.logger.Info().Str("account", fc.Account).Msg("logged in")

	return &Account{
		client:       c,
		entry:        entry,
		id:           AccountID(fc.Account),
		token:        resp.Token,
		marketAPIKey: marketAPIKey,
	}, nil
}

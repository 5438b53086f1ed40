package github

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/crypto/nacl/box"
)

const secretsPerPage = 100

type publicKey struct {
	KeyID string `json:"key_id"`
	Key   string `json:"key"`
}

type putSecretRequest struct {
	EncryptedValue string `json:"encrypted_value"`
	KeyID          string `json:"key_id"`
}

type listSecretsResponse struct {
	TotalCount int `json:"total_count"`
	Secrets    []struct {
		Name string `json:"name"`
	} `json:"secrets"`
}

func secretsPath(repo string) string {
	return "/repos/" + repo + "/actions/secrets"
}

func (c *Client) getPublicKey(ctx context.Context, token, repo string) (*publicKey, error) {
	var key publicKey
	if err := c.do(ctx, token, http.MethodGet, secretsPath(repo)+"/public-key", nil, &key); err != nil {
		return nil, fmt.Errorf("get public key: %w", err)
	}
	return &key, nil
}

func (c *Client) putSecret(ctx context.Context, token, repo string, key *publicKey, name, value string) error {
	encrypted, err := seal(key.Key, value)
	if err != nil {
		return fmt.Errorf("encrypt secret %s: %w", name, err)
	}

	req := putSecretRequest{EncryptedValue: encrypted, KeyID: key.KeyID}
	if err := c.do(ctx, token, http.MethodPut, secretsPath(repo)+"/"+url.PathEscape(name), req, nil); err != nil {
		return fmt.Errorf("put secret %s: %w", name, err)
	}
	return nil
}

func (c *Client) deleteSecret(ctx context.Context, token, repo, name string) error {
	if err := c.do(ctx, token, http.MethodDelete, secretsPath(repo)+"/"+url.PathEscape(name), nil, nil); err != nil {
		return fmt.Errorf("delete secret %s: %w", name, err)
	}
	return nil
}

func (c *Client) listSecretNames(ctx context.Context, token, repo string) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", strconv.Itoa(secretsPerPage))
		q.Set("page", strconv.Itoa(page))

		var resp listSecretsResponse
		if err := c.do(ctx, token, http.MethodGet, secretsPath(repo)+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, fmt.Errorf("list secrets: %w", err)
		}
		for _, s := range resp.Secrets {
			names = append(names, s.Name)
		}
		if len(resp.Secrets) < secretsPerPage || len(names) >= resp.TotalCount {
			return names, nil
		}
	}
}

// seal encrypts value for the repository public key (base64 curve25519) the
// way GitHub expects: an anonymous sealed box, base64-encoded.
func seal(b64Key, value string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64Key)
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("public key is %d bytes, want 32", len(raw))
	}

	var recipient [32]byte
	copy(recipient[:], raw)

	sealed, err := box.SealAnonymous(nil, []byte(value), &recipient, rand.Reader)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

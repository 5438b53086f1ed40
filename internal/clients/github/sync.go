package github

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Sync makes the secrets of params["repo"] match the dotenv file at
// dotenvPath. With deleteMissing, remote secrets absent from the file are
// deleted. params["token"], when set, overrides the client token.
func (c *Client) Sync(ctx context.Context, dotenvPath string, params map[string]string, deleteMissing bool) error {
	repo := strings.Trim(params["repo"], "/")
	if strings.Count(repo, "/") != 1 {
		return ErrRepoRequired
	}
	token := params["token"]
	if token == "" {
		token = c.token
	}
	if token == "" {
		return ErrTokenRequired
	}

	local, err := godotenv.Read(dotenvPath)
	if err != nil {
		return fmt.Errorf("read dotenv: %w", err)
	}

	key, err := c.getPublicKey(ctx, token, repo)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(local))
	for name := range local {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := c.putSecret(ctx, token, repo, key, name, local[name]); err != nil {
			return err
		}
	}

	logger := c.logger.With().Str("repo", repo).Logger()
	logger.Info().Int("count", len(names)).Msg("secrets updated")

	if !deleteMissing {
		return nil
	}

	remote, err := c.listSecretNames(ctx, token, repo)
	if err != nil {
		return err
	}
	for _, name := range remote {
		if _, ok := local[name]; ok {
			continue
		}
		if err := c.deleteSecret(ctx, token, repo, name); err != nil {
			return err
		}
		logger.Info().Str("secret", name).Msg("secret deleted")
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/gradepoint/pkg/config"
	"github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"
)

const (
	tokenFileName  = "token"
	keyringService = config.AppName
	keyringUser    = "gradebook_token"
	tokenFileMode  = 0600
)

var (
	tokenValueFlag = &cli.StringFlag{
		Name:     "value",
		Usage:    "Access token for remote gradebooks",
		Required: true,
	}

	tokenCmd = &cli.Command{
		Name:  "token",
		Usage: "Manage the access token sent when fetching gradebooks over HTTP",
		Commands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Save the access token to the OS keychain",
				Action: cmdTokenSet,
				Flags: []cli.Flag{
					tokenValueFlag,
				},
			},
			{
				Name:   "clear",
				Usage:  "Remove the saved access token",
				Action: cmdTokenClear,
			},
		},
	}
)

type tokenResult struct {
	Stored  bool   `json:"stored" yaml:"stored"`
	Message string `json:"message" yaml:"message"`
}

func cmdTokenSet(_ context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.String(tokenValueFlag.Name))
	if token == "" {
		return errors.New("token value required")
	}

	if err := saveToken(token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return output(cmd, &tokenResult{Stored: true, Message: "token saved"})
}

func cmdTokenClear(_ context.Context, cmd *cli.Command) error {
	if err := deleteToken(); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return output(cmd, &tokenResult{Stored: false, Message: "token removed"})
}

// resolveToken returns the token from the environment, the OS keychain or
// the token file, in that order. An empty token is not an error.
func resolveToken(s *config.Settings) string {
	if s != nil && s.Token != "" {
		return s.Token
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		return token
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		slog.Debug("keychain unavailable", "error", err)
	}

	token, err = getTokenFile()
	if err != nil {
		slog.Debug("no saved token", "error", err)
		return ""
	}
	return token
}

func saveToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveTokenFile(token)
	}

	// remove a file written while the keychain was unavailable
	if p, err := tokenFilePath(); err == nil {
		_ = os.Remove(p)
	}
	return nil
}

func deleteToken() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		slog.Debug("keychain delete failed", "error", err)
	}

	p, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file %s: %w", p, err)
	}
	return nil
}

func tokenFilePath() (string, error) {
	dir, _, err := config.GetOrCreateHomeDir(config.AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}

func saveTokenFile(token string) error {
	p, err := tokenFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), tokenFileMode)
}

func getTokenFile() (string, error) {
	p, err := tokenFilePath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("reading token file %s: %w", p, err)
	}
	return strings.TrimSpace(string(b)), nil
}

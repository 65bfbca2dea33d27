package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no token is stored for an account.
var ErrNoToken = errors.New("no Google OAuth token found")

// TokenProvider supplies OAuth tokens for named accounts.
type TokenProvider interface {
	GetTokenForAccount(ctx context.Context, account string) (*oauth2.Token, error)
	HasTokenForAccount(account string) bool
}

// TokenSaver is implemented by providers that can persist refreshed tokens.
type TokenSaver interface {
	SaveTokenForAccount(account string, token *oauth2.Token) error
}

const (
	tokenFilePrefix = "google-"
	tokenFileSuffix = ".token"
)

var accountNameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAccountName rejects names that could escape the token directory.
func ValidateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name is required")
	}
	if !accountNameRE.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, '-' and '_' are allowed", account)
	}
	return nil
}

// DefaultTokenDir returns <user cache dir>/gapikit.
func DefaultTokenDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gapikit")
}

// FileTokenProvider reads and writes tokens as JSON files in a directory.
type FileTokenProvider struct {
	dir string
}

// NewFileTokenProvider creates a provider rooted at dir. An empty dir uses
// DefaultTokenDir.
func NewFileTokenProvider(dir string) *FileTokenProvider {
	if dir == "" {
		dir = DefaultTokenDir()
	}
	return &FileTokenProvider{dir: dir}
}

// Dir returns the token directory.
func (p *FileTokenProvider) Dir() string {
	return p.dir
}

// TokenPath returns the file used for account.
func (p *FileTokenProvider) TokenPath(account string) (string, error) {
	if err := ValidateAccountName(account); err != nil {
		return "", err
	}
	return filepath.Join(p.dir, tokenFilePrefix+account+tokenFileSuffix), nil
}

func (p *FileTokenProvider) GetTokenForAccount(_ context.Context, account string) (*oauth2.Token, error) {
	path, err := p.TokenPath(account)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w for account %q", ErrNoToken, account)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	token, err := ParseToken(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token for account %q: %w", account, err)
	}
	return token, nil
}

func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	path, err := p.TokenPath(account)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// SaveTokenForAccount writes token atomically with 0600 permissions.
func (p *FileTokenProvider) SaveTokenForAccount(account string, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("token is required")
	}
	path, err := p.TokenPath(account)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	tmp, err := os.CreateTemp(p.dir, ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set token file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// ListAccounts returns the sorted names of all accounts with a stored token.
func (p *FileTokenProvider) ListAccounts() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token directory: %w", err)
	}

	accounts := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, tokenFilePrefix) || !strings.HasSuffix(name, tokenFileSuffix) {
			continue
		}
		account := strings.TrimSuffix(strings.TrimPrefix(name, tokenFilePrefix), tokenFileSuffix)
		if ValidateAccountName(account) == nil {
			accounts = append(accounts, account)
		}
	}
	sort.Strings(accounts)
	return accounts, nil
}

// ParseToken decodes a stored token. Besides JSON it accepts the legacy
// "<access token> <refresh token>" format, which is treated as expired so the
// first request refreshes it.
func ParseToken(data []byte) (*oauth2.Token, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("token is empty")
	}

	if strings.HasPrefix(trimmed, "{") {
		var token oauth2.Token
		if err := json.Unmarshal([]byte(trimmed), &token); err != nil {
			return nil, err
		}
		if token.AccessToken == "" && token.RefreshToken == "" {
			return nil, fmt.Errorf("token has neither access nor refresh token")
		}
		return &token, nil
	}

	f := strings.Fields(trimmed)
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format")
	}
	return &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	}, nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"datachat/apperr"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// AuthFile mirrors the credential file: login users plus the session cookie settings.
type AuthFile struct {
	Credentials Credentials  `yaml:"credentials"`
	Cookie      CookieConfig `yaml:"cookie"`
}

type Credentials struct {
	Usernames map[string]UserRecord `yaml:"usernames"`
}

type UserRecord struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type CookieConfig struct {
	Name       string  `yaml:"name"`
	Key        string  `yaml:"key"`
	ExpiryDays float64 `yaml:"expiry_days"`
}

// LoadAuthFile reads and validates the credential file at path. Plain-text passwords are
// replaced by their bcrypt hash in memory.
func LoadAuthFile(path string) (*AuthFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeConfigInvalid, "failed to read credential file %s", path)
	}
	return ParseAuthFile(data)
}

func ParseAuthFile(data []byte) (*AuthFile, error) {
	var af AuthFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigInvalid, "failed to parse credential file")
	}
	if err := af.validate(); err != nil {
		return nil, err
	}
	if err := af.hashPlainPasswords(); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfigInvalid, "failed to hash password")
	}
	return &af, nil
}

// MaxExpiryDays keeps the cookie lifetime well inside time.Duration.
const MaxExpiryDays = 100000

func (a *AuthFile) validate() error {
	if len(a.Credentials.Usernames) == 0 {
		return apperr.ConfigInvalid("credentials.usernames must list at least one user")
	}
	for username, user := range a.Credentials.Usernames {
		if strings.TrimSpace(username) == "" {
			return apperr.ConfigInvalid("credentials.usernames contains an empty username")
		}
		if user.Password == "" {
			return apperr.ConfigInvalid(fmt.Sprintf("user %q has no password", username))
		}
	}
	if a.Cookie.Name == "" {
		return apperr.ConfigInvalid("cookie.name is required")
	}
	if a.Cookie.Key == "" {
		return apperr.ConfigInvalid("cookie.key is required")
	}
	if !(a.Cookie.ExpiryDays >= 0 && a.Cookie.ExpiryDays <= MaxExpiryDays) {
		return apperr.ConfigInvalid(fmt.Sprintf("cookie.expiry_days must be between 0 and %d", MaxExpiryDays))
	}
	return nil
}

func (a *AuthFile) hashPlainPasswords() error {
	for username, user := range a.Credentials.Usernames {
		if IsBcryptHash(user.Password) {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hash)
		a.Credentials.Usernames[username] = user
	}
	return nil
}

func IsBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvBaseURL  = "JIRA_BASE_URL"
	EnvEmail    = "JIRA_EMAIL"
	EnvAPIToken = "JIRA_API_TOKEN"
)

var ErrMissingSettings = errors.New("missing required environment variables")

// requiredVars lists every required variable with the example shown when it is missing.
var requiredVars = []struct {
	name    string
	example string
}{
	{EnvBaseURL, "e.g., https://yourcompany.atlassian.net"},
	{EnvEmail, "your Jira email"},
	{EnvAPIToken, "your Jira API token"},
}

// Settings holds the Jira connection parameters. It is built once at startup
// and passed to every component that talks to Jira.
type Settings struct {
	BaseURL  string
	Email    string
	APIToken string
}

// LogValue keeps the token out of log output.
func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", s.BaseURL),
		slog.String("email", s.Email),
		slog.String("api_token", MaskToken(s.APIToken)),
	)
}

// MissingSettingsError names every required variable that was absent or empty.
type MissingSettingsError struct {
	Missing []string
}

func (e *MissingSettingsError) Error() string {
	var b strings.Builder
	b.WriteString("Missing required environment variables. Please set:")
	for _, v := range requiredVars {
		for _, name := range e.Missing {
			if name == v.name {
				b.WriteString(fmt.Sprintf("\n- %s (%s)", v.name, v.example))
			}
		}
	}
	return b.String()
}

func (e *MissingSettingsError) Is(target error) bool {
	return target == ErrMissingSettings
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func Load(lookup LookupFunc) (*Settings, error) {
	values := make(map[string]string, len(requiredVars))
	var missing []string
	for _, v := range requiredVars {
		value, ok := lookup(v.name)
		if !ok || value == "" {
			missing = append(missing, v.name)
			continue
		}
		values[v.name] = value
	}
	if len(missing) > 0 {
		return nil, &MissingSettingsError{Missing: missing}
	}

	return &Settings{
		BaseURL:  values[EnvBaseURL],
		Email:    values[EnvEmail],
		APIToken: values[EnvAPIToken],
	}, nil
}

// LoadFromEnvironment reads the given dotenv files (missing files are skipped,
// variables already set in the process win) and then loads settings from the
// process environment.
func LoadFromEnvironment(envFiles ...string) (*Settings, error) {
	for _, path := range envFiles {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
	}
	return Load(os.LookupEnv)
}

func MaskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return fmt.Sprintf("%s***%s", token[:4], token[len(token)-4:])
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

const (
	configName = ".gitpublisher"
	envPrefix  = "GITPUBLISHER"
)

type Config struct {
	TagPrefix      string      `mapstructure:"tag_prefix"`
	SCM            string      `mapstructure:"scm"`
	Merge          MergeConfig `mapstructure:"merge"`
	TaggerName     string      `mapstructure:"tagger_name"`
	TaggerEmail    string      `mapstructure:"tagger_email"`
	GithubToken    string      `mapstructure:"github_token"`
	GithubOwner    string      `mapstructure:"github_owner"`
	GithubRepo     string      `mapstructure:"github_repo"`
	StatusContext  string      `mapstructure:"status_context"`
	StateDir       string      `mapstructure:"state_dir"`
	PushgatewayURL string      `mapstructure:"pushgateway_url"`
	EnvFile        string      `mapstructure:"env_file"`
}

// MergeConfig mirrors the merge options of the project's git SCM.
type MergeConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Remote       string `mapstructure:"remote"`
	RemoteURL    string `mapstructure:"remote_url"`
	TargetBranch string `mapstructure:"target_branch"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		TagPrefix:     "hudson",
		SCM:           "git",
		Merge:         MergeConfig{Remote: "origin"},
		StatusContext: "gitpublisher",
		StateDir:      ".gitpublisher-state",
	}
}

var tagPrefixRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.TagPrefix == "" {
		return fmt.Errorf("tag_prefix cannot be empty")
	}
	if !tagPrefixRegex.MatchString(c.TagPrefix) || strings.Contains(c.TagPrefix, "..") {
		return fmt.Errorf("tag_prefix contains invalid characters: %s", c.TagPrefix)
	}
	if c.SCM == "" {
		return fmt.Errorf("scm cannot be empty")
	}
	if c.Merge.Enabled {
		if c.Merge.TargetBranch == "" {
			return fmt.Errorf("merge.target_branch is required when merge is enabled")
		}
		if c.Merge.Remote == "" && c.Merge.RemoteURL == "" {
			return fmt.Errorf("merge.remote or merge.remote_url is required when merge is enabled")
		}
	}
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	if strings.Contains(c.StateDir, "..") {
		return fmt.Errorf("state_dir contains invalid path traversal")
	}
	if c.PushgatewayURL != "" {
		u, err := url.Parse(c.PushgatewayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid pushgateway_url: %s", c.PushgatewayURL)
		}
	}
	return nil
}

// StatusReportingEnabled reports whether commit statuses should be sent to GitHub
func (c *Config) StatusReportingEnabled() bool {
	return c.GithubToken != "" && c.GithubOwner != "" && c.GithubRepo != ""
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	prefixedPAT := regexp.MustCompile(`^ghp_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!prefixedPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads .gitpublisher.yaml from the working directory and the environment.
func LoadConfig() (*Config, error) {
	return Load(viper.New(), ".")
}

// Load reads configuration into v from configDir and the environment.
func Load(v *viper.Viper, configDir string) (*Config, error) {
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"github_token": {"GITPUBLISHER_GITHUB_TOKEN", "GITHUB_TOKEN"},
		"github_owner": {"GITPUBLISHER_GITHUB_OWNER", "GITHUB_OWNER"},
		"github_repo":  {"GITPUBLISHER_GITHUB_REPO", "GITHUB_REPO"},
		"tagger_name":  {"GITPUBLISHER_TAGGER_NAME", "GIT_COMMITTER_NAME"},
		"tagger_email": {"GITPUBLISHER_TAGGER_EMAIL", "GIT_COMMITTER_EMAIL"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	defaults := DefaultConfig()
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	v.SetDefault("scm", defaults.SCM)
	v.SetDefault("merge.enabled", false)
	v.SetDefault("merge.remote", defaults.Merge.Remote)
	v.SetDefault("merge.remote_url", "")
	v.SetDefault("merge.target_branch", "")
	v.SetDefault("status_context", defaults.StatusContext)
	v.SetDefault("state_dir", defaults.StateDir)
	v.SetDefault("pushgateway_url", "")
	v.SetDefault("env_file", "")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.GithubToken != "" {
		if err := populateRepositoryDefaults(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// populateRepositoryDefaults fills GitHub owner/repo from GITHUB_REPOSITORY
// or, failing that, from the origin remote of the repository in the working directory.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		if owner, repo, ok := strings.Cut(slug, "/"); ok && owner != "" && repo != "" {
			setIfEmpty(&cfg.GithubOwner, owner)
			setIfEmpty(&cfg.GithubRepo, repo)
			return nil
		}
	}
	setIfEmpty(&cfg.GithubOwner, os.Getenv("GITHUB_REPOSITORY_OWNER"))
	setIfEmpty(&cfg.GithubRepo, os.Getenv("GITHUB_REPOSITORY_NAME"))
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Not inside a repository: leave owner/repo for validation to report
		return nil
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return fmt.Errorf("failed to derive GitHub repository from origin: %w", err)
	}
	setIfEmpty(&cfg.GithubOwner, owner)
	setIfEmpty(&cfg.GithubRepo, name)
	return nil
}

// parseGitRemoteURL extracts owner and repository from https, ssh, scp-like
// and plain path remotes.
func parseGitRemoteURL(raw string) (string, string, error) {
	p := strings.TrimSpace(raw)
	switch {
	case strings.Contains(p, "://"):
		u, err := url.Parse(p)
		if err != nil {
			return "", "", fmt.Errorf("invalid remote url %q: %w", raw, err)
		}
		p = u.Path
	case strings.Contains(p, "@") && strings.Contains(p, ":"):
		_, p, _ = strings.Cut(p, ":")
	}
	p = strings.TrimSuffix(strings.ReplaceAll(p, "\\", "/"), "/")
	p = strings.TrimSuffix(p, ".git")
	repo := path.Base(p)
	owner := path.Base(path.Dir(p))
	if repo == "" || repo == "." || repo == "/" || owner == "" || owner == "." || owner == "/" {
		return "", "", fmt.Errorf("cannot determine owner and repository from %q", raw)
	}
	return owner, repo, nil
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

package repository

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	DefaultTaggerName  = "gitpublisher"
	DefaultTaggerEmail = "gitpublisher@localhost"
)

// GitOptions carries identity and credentials for a workspace repository.
type GitOptions struct {
	TaggerName  string
	TaggerEmail string
	Auth        transport.AuthMethod
}

// GitOptionsFromEnv builds options from the build environment. Identity comes
// from GIT_COMMITTER_* then GIT_AUTHOR_*, falling back to the given defaults.
// Credentials come from GIT_USERNAME/GIT_PASSWORD, then GITHUB_TOKEN.
func GitOptionsFromEnv(env map[string]string, name, email string) GitOptions {
	opts := GitOptions{
		TaggerName:  firstNonEmpty(env["GIT_COMMITTER_NAME"], env["GIT_AUTHOR_NAME"], name, DefaultTaggerName),
		TaggerEmail: firstNonEmpty(env["GIT_COMMITTER_EMAIL"], env["GIT_AUTHOR_EMAIL"], email, DefaultTaggerEmail),
	}
	if auth := authFromEnv(env); auth != nil {
		opts.Auth = auth
	}
	return opts
}

// authFromEnv returns nil when no credentials are present
func authFromEnv(env map[string]string) *http.BasicAuth {
	if user, pass := env["GIT_USERNAME"], env["GIT_PASSWORD"]; user != "" && pass != "" {
		return &http.BasicAuth{Username: user, Password: pass}
	}
	token := strings.TrimSpace(env["GITHUB_TOKEN"])
	if token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package host

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvironmentResolver resolves the environment variables of a build.
type EnvironmentResolver interface {
	Resolve(ctx context.Context) (map[string]string, error)
}

// ProcessEnvironment returns the process environment overlaid with the
// given dotenv files, later files winning.
type ProcessEnvironment struct {
	Files []string
}

// Resolve returns the merged environment. A canceled context or an
// unreadable file is an error.
func (p ProcessEnvironment) Resolve(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("environment resolution interrupted: %w", err)
	}
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	for _, file := range p.Files {
		if file == "" {
			continue
		}
		vars, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	return env, nil
}

// StaticEnvironment resolves to a fixed set of variables.
type StaticEnvironment map[string]string

func (s StaticEnvironment) Resolve(_ context.Context) (map[string]string, error) {
	env := make(map[string]string, len(s))
	for k, v := range s {
		env[k] = v
	}
	return env, nil
}

package host

import (
	"context"
	"sync"

	"github.com/compozy/gitpublisher/internal/domain"
)

// Build is the host's record of a completed build.
type Build interface {
	Info() domain.BuildContext
	SCM() domain.SCM
	Environment(ctx context.Context) (map[string]string, error)
	SetResult(result domain.Result)
}

// BuildRecord is an in-process Build.
type BuildRecord struct {
	mu   sync.Mutex
	info domain.BuildContext
	scm  domain.SCM
	env  EnvironmentResolver
}

// NewBuildRecord creates a build record. A nil resolver yields an empty environment.
func NewBuildRecord(info domain.BuildContext, scm domain.SCM, env EnvironmentResolver) *BuildRecord {
	if env == nil {
		env = StaticEnvironment{}
	}
	return &BuildRecord{info: info, scm: scm, env: env}
}

func (b *BuildRecord) Info() domain.BuildContext {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.info
}

func (b *BuildRecord) SCM() domain.SCM {
	return b.scm
}

func (b *BuildRecord) Environment(ctx context.Context) (map[string]string, error) {
	return b.env.Resolve(ctx)
}

// SetResult overwrites the build result.
func (b *BuildRecord) SetResult(result domain.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.info.Result = result
}

// Result returns the current build result.
func (b *BuildRecord) Result() domain.Result {
	return b.Info().Result
}

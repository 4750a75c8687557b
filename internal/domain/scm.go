package domain

// SCMKindGit identifies git as the configured source control system.
const SCMKindGit = "git"

// SCM describes the source control configured for a project.
type SCM struct {
	Kind  string
	Merge MergeConfiguration
}

// IsGit reports whether the SCM is the one the publisher understands.
func (s SCM) IsGit() bool {
	return s.Kind == SCMKindGit
}

// MergeConfiguration controls whether a successful build is pushed back and where.
type MergeConfiguration struct {
	Enabled      bool
	RemoteName   string
	RemoteURL    string
	TargetBranch string
}

// RefSpec returns the push ref-spec for the target branch.
func (m MergeConfiguration) RefSpec() string {
	return "HEAD:" + m.TargetBranch
}

// ShouldPush reports whether a build with the given result is pushed.
func (m MergeConfiguration) ShouldPush(result Result) bool {
	return m.Enabled && result.IsBetterOrEqualTo(ResultSuccess)
}

// Remote is the push destination for merge results.
type Remote struct {
	Name string
	URL  string
}

// Remote returns the configured push destination.
func (m MergeConfiguration) Remote() Remote {
	return Remote{Name: m.RemoteName, URL: m.RemoteURL}
}

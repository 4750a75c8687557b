package orchestrator

import (
	"testing"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/compozy/gitpublisher/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResultPublisher_Plan(t *testing.T) {
	t.Run("Should describe tag and push for a successful merge", func(t *testing.T) {
		f := newPublisherFixture(t)
		plan, err := f.publisher.Plan(newBuild(domain.ResultSuccess, mergeTo("release")))
		require.NoError(t, err)
		assert.Equal(t, PublishPlan{
			BaseTag:    "hudson-widgets-42",
			Tag:        "hudson-widgets-42-SUCCESS",
			TagMessage: "Build #42",
			Push:       true,
			Remote:     "origin",
			RefSpec:    "HEAD:release",
		}, plan)
		assert.Zero(t, f.workspace.calls)
		assert.Empty(t, f.opened)
	})
	t.Run("Should not plan a push for a failed build", func(t *testing.T) {
		f := newPublisherFixture(t)
		plan, err := f.publisher.Plan(newBuild(domain.ResultFailure, mergeTo("release")))
		require.NoError(t, err)
		assert.Equal(t, "hudson-widgets-42-FAILURE", plan.Tag)
		assert.False(t, plan.Push)
		assert.Empty(t, plan.RefSpec)
	})
	t.Run("Should mark non git builds as skipped", func(t *testing.T) {
		f := newPublisherFixture(t)
		info := domain.BuildContext{ProjectName: "widgets", Number: 1, Result: domain.ResultSuccess}
		plan, err := f.publisher.Plan(host.NewBuildRecord(info, domain.SCM{Kind: "cvs"}, nil))
		require.NoError(t, err)
		assert.True(t, plan.Skipped)
		assert.Contains(t, plan.Reason, "cvs")
	})
	t.Run("Should reject an invalid target branch", func(t *testing.T) {
		f := newPublisherFixture(t)
		_, err := f.publisher.Plan(newBuild(domain.ResultSuccess, mergeTo("feature..x")))
		assert.Error(t, err)
	})
	t.Run("Should plan a push to a branch with '+' in its name", func(t *testing.T) {
		f := newPublisherFixture(t)
		plan, err := f.publisher.Plan(newBuild(domain.ResultSuccess, mergeTo("release+1")))
		require.NoError(t, err)
		assert.True(t, plan.Push)
		assert.Equal(t, "HEAD:release+1", plan.RefSpec)
	})
}

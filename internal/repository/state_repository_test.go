package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	runOne = "0f8fad5b-d9cb-469f-a165-70867728950e"
	runTwo = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func newTestRecord(id string, number int) *domain.PublishRecord {
	rec := domain.NewPublishRecord(id, domain.BuildContext{
		ProjectName: "widgets",
		Number:      number,
		Result:      domain.ResultSuccess,
	})
	rec.TagName = domain.BuildTagName(domain.DefaultTagPrefix, "widgets", number, domain.ResultSuccess)
	rec.AddStep(domain.StepTypeCreateTag, rec.TagName, nil)
	rec.Finish(domain.PublishOutcomePublished, nil)
	return rec
}

func TestJSONRecordRepository(t *testing.T) {
	ctx := context.Background()
	t.Run("Should save and load a record", func(t *testing.T) {
		repo := NewJSONRecordRepository(afero.NewOsFs(), filepath.Join(t.TempDir(), "state"))
		rec := newTestRecord(runOne, 1)
		require.NoError(t, repo.Save(ctx, rec))
		loaded, err := repo.Load(ctx, runOne)
		require.NoError(t, err)
		assert.Equal(t, rec.TagName, loaded.TagName)
		assert.Equal(t, domain.PublishOutcomePublished, loaded.Outcome)
		require.Len(t, loaded.Steps, 1)
	})
	t.Run("Should return latest saved record", func(t *testing.T) {
		repo := NewJSONRecordRepository(afero.NewOsFs(), filepath.Join(t.TempDir(), "state"))
		require.NoError(t, repo.Save(ctx, newTestRecord(runOne, 1)))
		require.NoError(t, repo.Save(ctx, newTestRecord(runTwo, 2)))
		latest, err := repo.LoadLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, runTwo, latest.ID)
		assert.Equal(t, 2, latest.BuildNumber)
	})
	t.Run("Should report missing records", func(t *testing.T) {
		repo := NewJSONRecordRepository(afero.NewOsFs(), filepath.Join(t.TempDir(), "state"))
		_, err := repo.Load(ctx, "5b0d1b0e-0000-4000-8000-000000000000")
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = repo.LoadLatest(ctx)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
	t.Run("Should detect corrupted records", func(t *testing.T) {
		fs := afero.NewOsFs()
		dir := filepath.Join(t.TempDir(), "state")
		repo := NewJSONRecordRepository(fs, dir)
		require.NoError(t, repo.Save(ctx, newTestRecord(runOne, 1)))
		path := filepath.Join(dir, "record-"+runOne+".json")
		corrupted := []byte(`{"metadata":{"schema_version":"1.0.0","checksum":"bad"},"record":{"id":"` + runOne + `"}}`)
		require.NoError(t, afero.WriteFile(fs, path, corrupted, RecordFilePermissions))
		_, err := repo.Load(ctx, runOne)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checksum mismatch")
	})
	t.Run("Should delete a record", func(t *testing.T) {
		repo := NewJSONRecordRepository(afero.NewOsFs(), filepath.Join(t.TempDir(), "state"))
		require.NoError(t, repo.Save(ctx, newTestRecord(runOne, 1)))
		require.NoError(t, repo.Delete(ctx, runOne))
		exists, err := repo.Exists(ctx, runOne)
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should work on an in-memory filesystem", func(t *testing.T) {
		repo := NewJSONRecordRepository(afero.NewMemMapFs(), filepath.Join(t.TempDir(), "state"))
		require.NoError(t, repo.Save(ctx, newTestRecord(runOne, 1)))
		loaded, err := repo.Load(ctx, runOne)
		require.NoError(t, err)
		assert.Equal(t, runOne, loaded.ID)
	})
	t.Run("Should reject ids that could escape the record directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "state")
		repo := NewJSONRecordRepository(afero.NewOsFs(), dir)
		for _, id := range []string{"../../etc/passwd", "run-1", ""} {
			_, err := repo.Load(ctx, id)
			assert.ErrorIs(t, err, ErrInvalidRecordID, id)
			_, err = repo.Exists(ctx, id)
			assert.ErrorIs(t, err, ErrInvalidRecordID, id)
			assert.ErrorIs(t, repo.Delete(ctx, id), ErrInvalidRecordID, id)
			assert.ErrorIs(t, repo.Save(ctx, newTestRecord(id, 1)), ErrInvalidRecordID, id)
		}
	})
}

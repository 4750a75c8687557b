package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/compozy/gitpublisher/internal/domain"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// RecordSchemaVersion defines the current schema version for record files
	RecordSchemaVersion = "1.0.0"
	// RecordFilePermissions defines the permissions for record files
	RecordFilePermissions = 0600
	// RecordDirPermissions defines the permissions for the record directory
	RecordDirPermissions = 0700
	// DefaultRecordDir is used when no directory is configured
	DefaultRecordDir = ".gitpublisher-state"
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrRecordNotFound is returned when no record exists for the requested id.
var ErrRecordNotFound = errors.New("publish record not found")

// ErrInvalidRecordID is returned for ids that are not UUIDs.
var ErrInvalidRecordID = errors.New("invalid publish record id")

var errLockBusy = errors.New("lock is held by another process")

// PublishRecordRepository stores the history of publish runs
type PublishRecordRepository interface {
	Save(ctx context.Context, record *domain.PublishRecord) error
	Load(ctx context.Context, id string) (*domain.PublishRecord, error)
	LoadLatest(ctx context.Context) (*domain.PublishRecord, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// RecordMetadata contains metadata about the record file
type RecordMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecordWrapper wraps the record with metadata
type RecordWrapper struct {
	Metadata RecordMetadata        `json:"metadata"`
	Record   *domain.PublishRecord `json:"record"`
}

// JSONRecordRepository implements PublishRecordRepository using JSON files.
// Lock files are taken with flock on the host filesystem, so recordDir must
// be a real path when fs is an OS filesystem.
type JSONRecordRepository struct {
	fs        afero.Fs
	recordDir string
	mu        sync.RWMutex
}

// NewJSONRecordRepository creates a new JSON-based record repository
func NewJSONRecordRepository(fs afero.Fs, recordDir string) PublishRecordRepository {
	if recordDir == "" {
		recordDir = DefaultRecordDir
	}
	return &JSONRecordRepository{
		fs:        fs,
		recordDir: recordDir,
	}
}

// Save persists the record to a JSON file with proper locking
func (r *JSONRecordRepository) Save(ctx context.Context, record *domain.PublishRecord) error {
	if err := checkRecordID(record.ID); err != nil {
		return err
	}
	if err := r.ensureRecordDir(); err != nil {
		return fmt.Errorf("failed to ensure record directory: %w", err)
	}
	filename := r.getRecordFilename(record.ID)
	unlock, err := r.lock(ctx, record.ID, false)
	if err != nil {
		return err
	}
	defer unlock()
	wrapper := RecordWrapper{
		Metadata: RecordMetadata{
			SchemaVersion: RecordSchemaVersion,
			CreatedAt:     record.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Record: record,
	}
	recordData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for checksum: %w", err)
	}
	wrapper.Metadata.Checksum = r.calculateChecksum(recordData)
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record wrapper: %w", err)
	}
	// Write atomically using temp file
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, RecordFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp record file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename record file: %w", err)
	}
	if err := r.updateLatestLink(filename); err != nil {
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// Load retrieves a record by id and validates its checksum
func (r *JSONRecordRepository) Load(ctx context.Context, id string) (*domain.PublishRecord, error) {
	if err := checkRecordID(id); err != nil {
		return nil, err
	}
	filename := r.getRecordFilename(id)
	if exists, err := r.Exists(ctx, id); err != nil {
		return nil, err
	} else if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	unlock, err := r.lock(ctx, id, true)
	if err != nil {
		return nil, err
	}
	defer unlock()
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	var wrapper RecordWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != RecordSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			RecordSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	recordData, err := json.Marshal(wrapper.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != r.calculateChecksum(recordData) {
		return nil, fmt.Errorf("record checksum mismatch: data may be corrupted")
	}
	return wrapper.Record, nil
}

// LoadLatest retrieves the most recently saved record
func (r *JSONRecordRepository) LoadLatest(ctx context.Context) (*domain.PublishRecord, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.getLatestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no records saved yet", ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	target := string(data)
	id := r.extractRecordID(target)
	if id == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", target)
	}
	return r.Load(ctx, id)
}

// Delete removes a record
func (r *JSONRecordRepository) Delete(ctx context.Context, id string) error {
	if err := checkRecordID(id); err != nil {
		return err
	}
	unlock, err := r.lock(ctx, id, false)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for deletion: %w", err)
	}
	defer unlock()
	if err := r.fs.Remove(r.getRecordFilename(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// Exists checks if a record exists
func (r *JSONRecordRepository) Exists(_ context.Context, id string) (bool, error) {
	if err := checkRecordID(id); err != nil {
		return false, err
	}
	exists, err := afero.Exists(r.fs, r.getRecordFilename(id))
	if err != nil {
		return false, fmt.Errorf("failed to check record file: %w", err)
	}
	return exists, nil
}

// lock takes a flock on the record's lock file, retrying until LockTimeout.
func (r *JSONRecordRepository) lock(ctx context.Context, id string, shared bool) (func(), error) {
	if err := r.ensureRecordDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure record directory: %w", err)
	}
	fl := flock.New(r.getLockFilename(id))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	backoff := retry.NewConstant(LockRetryInterval)
	err := retry.Do(lockCtx, backoff, func(_ context.Context) error {
		var locked bool
		var err error
		if shared {
			locked, err = fl.TryRLock()
		} else {
			locked, err = fl.TryLock()
		}
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(errLockBusy)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return func() {
		if unlockErr := fl.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}, nil
}

// calculateChecksum calculates SHA-256 checksum of data
func (r *JSONRecordRepository) calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (r *JSONRecordRepository) ensureRecordDir() error {
	if err := r.fs.MkdirAll(r.recordDir, RecordDirPermissions); err != nil {
		return err
	}
	// flock needs the directory on the host filesystem as well
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return os.MkdirAll(r.recordDir, RecordDirPermissions)
	}
	return nil
}

// checkRecordID keeps ids from naming files outside the record directory.
func checkRecordID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}
	return nil
}

func (r *JSONRecordRepository) getRecordFilename(id string) string {
	return filepath.Join(r.recordDir, fmt.Sprintf("record-%s.json", id))
}

func (r *JSONRecordRepository) getLockFilename(id string) string {
	return filepath.Join(r.recordDir, fmt.Sprintf(".record-%s.lock", id))
}

func (r *JSONRecordRepository) getLatestLink() string {
	return filepath.Join(r.recordDir, "latest.txt")
}

// updateLatestLink points latest.txt at target
func (r *JSONRecordRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link := r.getLatestLink()
	tempLink := link + ".tmp"
	if err := afero.WriteFile(r.fs, tempLink, []byte(target), RecordFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp latest link: %w", err)
	}
	if err := r.fs.Rename(tempLink, link); err != nil {
		if removeErr := r.fs.Remove(tempLink); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp link: %v\n", removeErr)
		}
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// extractRecordID extracts the record id from a record filename
func (r *JSONRecordRepository) extractRecordID(filename string) string {
	base := filepath.Base(filename)
	const prefix, suffix = "record-", ".json"
	if len(base) > len(prefix)+len(suffix) && base[:len(prefix)] == prefix && base[len(base)-len(suffix):] == suffix {
		return base[len(prefix) : len(base)-len(suffix)]
	}
	return ""
}

// Package datastore loads the company data snapshot from a flat JSON file.
// The file is the sole persisted state and is read-only at runtime.
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("datastore")

// FileStore reads the data file on every Load call — there is no caching
// layer, so callers always observe the on-disk content at call time.
// Concurrent loads are coalesced into a single disk read via singleflight.
type FileStore struct {
	path    string
	group   singleflight.Group
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewFileStore creates a store reading from the given path.
func NewFileStore(path string, metrics *observability.Metrics, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:    path,
		metrics: metrics,
		logger:  logger,
	}
}

// Load reads and validates the data file, returning an immutable snapshot.
// A missing or malformed file fails with domain.ErrDataUnavailable.
func (s *FileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	_, span := tracer.Start(ctx, "FileStore.Load")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := s.group.Do(s.path, func() (any, error) {
		return s.read()
	})
	if err != nil {
		s.metrics.IncrDataLoad("error")
		s.logger.Error("data file load failed",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return nil, &domain.ErrDataUnavailable{Path: s.path, Err: err}
	}

	s.metrics.IncrDataLoad("ok")
	return v.(*domain.Snapshot), nil
}

func (s *FileStore) read() (*domain.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var snap domain.Snapshot
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}

	if err := validate(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// validate rejects partially-shaped data outright instead of letting it
// propagate downstream.
func validate(snap *domain.Snapshot) error {
	if snap.Customers == nil {
		return fmt.Errorf("missing required key 'customers'")
	}
	if snap.Feedback == nil {
		return fmt.Errorf("missing required key 'feedback'")
	}

	for i, c := range snap.Customers {
		if c.ID == 0 {
			return fmt.Errorf("customer[%d]: missing id", i)
		}
		if c.Name == "" || c.Email == "" {
			return fmt.Errorf("customer %d: name and email are required", c.ID)
		}
		if c.Status != "active" && c.Status != "inactive" {
			return fmt.Errorf("customer %d: invalid status %q", c.ID, c.Status)
		}
		if c.Plan == "" {
			return fmt.Errorf("customer %d: plan is required", c.ID)
		}
	}

	for i, f := range snap.Feedback {
		if f.ID == 0 {
			return fmt.Errorf("feedback[%d]: missing id", i)
		}
		if f.Rating < 1 || f.Rating > 5 {
			return fmt.Errorf("feedback %d: rating %d out of range 1..5", f.ID, f.Rating)
		}
		if f.User == "" {
			return fmt.Errorf("feedback %d: user is required", f.ID)
		}
	}

	return nil
}

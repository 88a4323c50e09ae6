// Package disk provides the command interface for one simulated disk. A
// Service wraps an alloc.Store with input validation, a lock, tracing spans,
// structured logs and metrics. All shells (HTTP API, interactive shell) go
// through a Service; nothing touches the Store directly.
package disk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/internal/telemetry"
	"github.com/marmos91/indexfs/pkg/alloc"
	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
	"github.com/marmos91/indexfs/pkg/metrics"
)

// Operation names used for spans, log context and metric labels.
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpWrite  = "write"
	OpRead   = "read"
	OpStat   = "stat"
	OpList   = "list"
	OpBlocks = "blocks"
	OpUsage  = "usage"
)

// Info describes a disk for listings.
type Info struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	alloc.Usage `yaml:",inline"`
}

// Service is a concurrency-safe simulated disk.
type Service struct {
	mu      sync.Mutex
	store   *alloc.Store
	id      uuid.UUID
	name    string
	created time.Time
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records operations into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithID overrides the generated disk ID.
func WithID(id uuid.UUID) Option {
	return func(s *Service) { s.id = id }
}

// New creates a disk named name with the given geometry.
func New(name string, totalBlocks, blockSize int, opts ...Option) (*Service, error) {
	if err := validateDiskName(name); err != nil {
		return nil, err
	}
	store, err := alloc.New(totalBlocks, blockSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:   store,
		id:      uuid.New(),
		name:    name,
		created: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publishUsage()

	logger.Debug("Disk created",
		logger.KeyDisk, name,
		logger.KeyDiskID, s.id.String(),
		logger.KeyTotalBlocks, totalBlocks,
		logger.KeyBlockSize, blockSize)
	return s, nil
}

// NewDefault creates a disk with the reference geometry of 64 blocks and a
// 4096 divisor.
func NewDefault(name string, opts ...Option) (*Service, error) {
	return New(name, alloc.DefaultTotalBlocks, alloc.DefaultBlockSize, opts...)
}

func (s *Service) Name() string { return s.name }

func (s *Service) ID() uuid.UUID { return s.id }

// Info returns a snapshot describing the disk.
func (s *Service) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:        s.id.String(),
		Name:      s.name,
		CreatedAt: s.created,
		Usage:     s.store.Usage(),
	}
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return storeerrors.NewInvalidInputError(fmt.Sprintf("%s name must not be empty", kind))
	}
	return nil
}

// validateDiskName also rejects '/', since disk names are single URL path
// segments.
func validateDiskName(name string) error {
	if err := validateName("disk", name); err != nil {
		return err
	}
	if strings.Contains(name, "/") {
		return storeerrors.NewInvalidInputError("disk name must not contain '/'")
	}
	return nil
}

// CreateFile creates name with a declared size of sizeKB.
func (s *Service) CreateFile(ctx context.Context, name string, sizeKB int) error {
	return s.run(ctx, OpCreate, name, func(ctx context.Context) error {
		if err := validateName("file", name); err != nil {
			return err
		}
		if sizeKB < 0 {
			return storeerrors.NewInvalidInputError(fmt.Sprintf("size must be non-negative, got %d", sizeKB))
		}
		telemetry.SetAttributes(ctx, telemetry.SizeKB(sizeKB))

		if err := s.store.CreateFile(name, sizeKB); err != nil {
			return err
		}

		ino, err := s.store.Stat(name)
		if err != nil {
			return err
		}
		telemetry.SetAttributes(ctx,
			telemetry.IndexBlock(ino.IndexBlock),
			telemetry.BlockCount(ino.BlockCount()))
		logger.DebugCtx(ctx, "File allocated",
			logger.KeyFilename, name,
			logger.KeySizeKB, sizeKB,
			logger.KeyIndexBlock, ino.IndexBlock,
			logger.KeyDataBlocks, ino.DataBlocks)
		return nil
	})
}

// DeleteFile removes name and frees its blocks.
func (s *Service) DeleteFile(ctx context.Context, name string) error {
	return s.run(ctx, OpDelete, name, func(ctx context.Context) error {
		if err := validateName("file", name); err != nil {
			return err
		}
		return s.store.DeleteFile(name)
	})
}

// WriteFile replaces the content of name.
func (s *Service) WriteFile(ctx context.Context, name, content string) error {
	return s.run(ctx, OpWrite, name, func(ctx context.Context) error {
		if err := validateName("file", name); err != nil {
			return err
		}
		if err := s.store.WriteFile(name, content); err != nil {
			return err
		}
		telemetry.SetAttributes(ctx, telemetry.Bytes(len(content)))
		s.metrics.AddBytesWritten(s.name, len(content))
		return nil
	})
}

// ReadFile returns the content of name.
func (s *Service) ReadFile(ctx context.Context, name string) (string, error) {
	var content string
	err := s.run(ctx, OpRead, name, func(ctx context.Context) error {
		if err := validateName("file", name); err != nil {
			return err
		}
		c, err := s.store.ReadFile(name)
		if err != nil {
			return err
		}
		content = c
		s.metrics.AddBytesRead(s.name, len(c))
		return nil
	})
	return content, err
}

// Stat returns the inode of name.
func (s *Service) Stat(ctx context.Context, name string) (alloc.Inode, error) {
	var ino alloc.Inode
	err := s.run(ctx, OpStat, name, func(context.Context) error {
		if err := validateName("file", name); err != nil {
			return err
		}
		var err error
		ino, err = s.store.Stat(name)
		return err
	})
	return ino, err
}

// ListInodes returns every inode in creation order.
func (s *Service) ListInodes(ctx context.Context) ([]alloc.Inode, error) {
	var inodes []alloc.Inode
	err := s.run(ctx, OpList, "", func(context.Context) error {
		inodes = s.store.ListInodes()
		return nil
	})
	return inodes, err
}

// FreeBlockMap returns the availability vector; true means free.
func (s *Service) FreeBlockMap(ctx context.Context) ([]bool, error) {
	var free []bool
	err := s.run(ctx, OpBlocks, "", func(context.Context) error {
		free = s.store.FreeBlockMap()
		return nil
	})
	return free, err
}

// Usage returns block and file counts.
func (s *Service) Usage(ctx context.Context) (alloc.Usage, error) {
	var u alloc.Usage
	err := s.run(ctx, OpUsage, "", func(context.Context) error {
		u = s.store.Usage()
		return nil
	})
	return u, err
}

// run executes fn under the disk lock inside a span, then logs and records
// the outcome.
func (s *Service) run(ctx context.Context, op, filename string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var attrs []any
	ctx, span := telemetry.StartDiskSpan(ctx, op, s.name)
	defer span.End()
	if filename != "" {
		telemetry.SetAttributes(ctx, telemetry.Filename(filename))
		attrs = append(attrs, logger.KeyFilename, filename)
	}

	lc := logger.FromContext(ctx).Clone()
	if lc == nil {
		lc = logger.NewLogContext(s.name, op)
	} else {
		lc.Disk, lc.Operation = s.name, op
	}
	ctx = logger.WithContext(ctx, lc.WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx)))

	start := time.Now()
	s.mu.Lock()
	err := fn(ctx)
	usage := s.store.Usage()
	s.mu.Unlock()
	elapsed := time.Since(start)

	s.metrics.ObserveOperation(s.name, op, statusOf(err), elapsed)
	s.metrics.SetUsage(s.name, usage.TotalBlocks, usage.FreeBlocks, usage.Files)

	if err != nil {
		telemetry.RecordError(ctx, err)
		if code := storeerrors.CodeOf(err); code != 0 {
			telemetry.SetAttributes(ctx, telemetry.ErrorCode(code.String()))
			attrs = append(attrs, logger.KeyErrorCode, code.String())
		}
		logger.InfoCtx(ctx, "Disk operation failed", append(attrs, logger.Err(err))...)
		return err
	}

	telemetry.SetAttributes(ctx, telemetry.FreeBlocks(usage.FreeBlocks))
	if op == OpCreate || op == OpDelete || op == OpWrite {
		logger.DebugCtx(ctx, "Disk operation completed",
			append(attrs, logger.KeyFreeBlocks, usage.FreeBlocks, logger.KeyDurationMs, float64(elapsed.Microseconds())/1000.0)...)
	}
	return nil
}

func (s *Service) publishUsage() {
	u := s.store.Usage()
	s.metrics.SetUsage(s.name, u.TotalBlocks, u.FreeBlocks, u.Files)
}

func statusOf(err error) string {
	if err == nil {
		return metrics.StatusOK
	}
	switch storeerrors.CodeOf(err) {
	case storeerrors.ErrDuplicateName:
		return metrics.StatusDuplicateName
	case storeerrors.ErrInsufficientSpace:
		return metrics.StatusInsufficientSpace
	case storeerrors.ErrNotFound:
		return metrics.StatusNotFound
	case storeerrors.ErrInvalidInput:
		return metrics.StatusInvalidInput
	default:
		return metrics.StatusError
	}
}

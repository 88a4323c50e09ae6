// Package registry keeps the set of named simulated disks served by one
// process. Each disk is an independent disk.Service.
package registry

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/internal/telemetry"
	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
	"github.com/marmos91/indexfs/pkg/disk"
	"github.com/marmos91/indexfs/pkg/metrics"
)

// Registry is a thread-safe map of disk name to disk.Service.
//
// Example usage:
//
//	reg := registry.New(m)
//	reg.Create(ctx, "main", 64, 4096)
//	svc, _ := reg.Get("main")
//	svc.CreateFile(ctx, "notes.txt", 12)
type Registry struct {
	mu      sync.RWMutex
	disks   map[string]*disk.Service
	metrics *metrics.Metrics
}

// New creates an empty registry. m may be nil.
func New(m *metrics.Metrics) *Registry {
	return &Registry{
		disks:   make(map[string]*disk.Service),
		metrics: m,
	}
}

func diskNotFound(name string) error {
	return &storeerrors.StoreError{Code: storeerrors.ErrNotFound, Message: "disk not found", Name: name}
}

func diskExists(name string) error {
	return &storeerrors.StoreError{Code: storeerrors.ErrDuplicateName, Message: "disk already exists", Name: name}
}

// Register adds an existing service under its own name.
func (r *Registry) Register(svc *disk.Service) error {
	if svc == nil {
		return storeerrors.NewInvalidInputError("cannot register nil disk")
	}
	name := svc.Name()
	if strings.TrimSpace(name) == "" {
		return storeerrors.NewInvalidInputError("disk name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.disks[name]; exists {
		return diskExists(name)
	}
	r.disks[name] = svc
	r.metrics.SetDisks(len(r.disks))

	logger.Info("Disk registered", logger.KeyDisk, name, logger.KeyDiskID, svc.ID().String())
	return nil
}

// Create builds a disk with the given geometry and registers it.
func (r *Registry) Create(ctx context.Context, name string, totalBlocks, blockSize int) (*disk.Service, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRegistryAdd)
	defer span.End()
	telemetry.SetAttributes(ctx, telemetry.Disk(name))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	_, exists := r.disks[name]
	r.mu.RUnlock()
	if exists {
		err := diskExists(name)
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	svc, err := disk.New(name, totalBlocks, blockSize, disk.WithMetrics(r.metrics))
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	if err := r.Register(svc); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	return svc, nil
}

// Get returns the disk called name.
func (r *Registry) Get(name string) (*disk.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.disks[name]
	if !ok {
		return nil, diskNotFound(name)
	}
	return svc, nil
}

// Remove drops the disk called name along with its files.
func (r *Registry) Remove(ctx context.Context, name string) error {
	_, span := telemetry.StartSpan(ctx, telemetry.SpanRegistryRemove)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.disks[name]; !ok {
		return diskNotFound(name)
	}
	delete(r.disks, name)
	r.metrics.ForgetDisk(name)
	r.metrics.SetDisks(len(r.disks))

	logger.Info("Disk removed", logger.KeyDisk, name)
	return nil
}

// List returns all disks sorted by name.
func (r *Registry) List() []*disk.Service {
	r.mu.RLock()
	out := make([]*disk.Service, 0, len(r.disks))
	for _, svc := range r.disks {
		out = append(out, svc)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *disk.Service) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// Names returns the sorted disk names.
func (r *Registry) Names() []string {
	disks := r.List()
	names := make([]string, len(disks))
	for i, d := range disks {
		names[i] = d.Name()
	}
	return names
}

// Count returns the number of registered disks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.disks)
}

package handlers

import (
	"net/http"

	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/marmos91/indexfs/pkg/disk"
	"github.com/marmos91/indexfs/pkg/registry"
)

// DiskHandler handles /api/v1/disks.
type DiskHandler struct {
	registry *registry.Registry
}

func NewDiskHandler(registry *registry.Registry) *DiskHandler {
	return &DiskHandler{registry: registry}
}

// CreateDiskRequest is the request body for POST /api/v1/disks.
// Zero geometry fields select the defaults.
type CreateDiskRequest struct {
	Name        string `json:"name"`
	TotalBlocks int    `json:"total_blocks,omitempty"`
	BlockSize   int    `json:"block_size,omitempty"`
}

// BlockMapResponse is returned by GET /api/v1/disks/{disk}/blocks.
type BlockMapResponse struct {
	Free      []bool `json:"free"`
	Total     int    `json:"total"`
	FreeCount int    `json:"free_count"`
}

// List handles GET /api/v1/disks.
func (h *DiskHandler) List(w http.ResponseWriter, r *http.Request) {
	disks := h.registry.List()
	out := make([]disk.Info, 0, len(disks))
	for _, d := range disks {
		out = append(out, d.Info())
	}
	OK(w, out)
}

// Create handles POST /api/v1/disks.
func (h *DiskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDiskRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.TotalBlocks == 0 {
		req.TotalBlocks = alloc.DefaultTotalBlocks
	}
	if req.BlockSize == 0 {
		req.BlockSize = alloc.DefaultBlockSize
	}

	svc, err := h.registry.Create(r.Context(), req.Name, req.TotalBlocks, req.BlockSize)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	Created(w, svc.Info())
}

// Get handles GET /api/v1/disks/{disk}.
func (h *DiskHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	OK(w, svc.Info())
}

// Delete handles DELETE /api/v1/disks/{disk}.
func (h *DiskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "disk")
	if err := h.registry.Remove(r.Context(), name); err != nil {
		writeStoreError(w, r, err)
		return
	}
	OK(w, map[string]string{"deleted": name})
}

// Blocks handles GET /api/v1/disks/{disk}/blocks.
func (h *DiskHandler) Blocks(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}

	free, err := svc.FreeBlockMap(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	count := 0
	for _, f := range free {
		if f {
			count++
		}
	}
	OK(w, BlockMapResponse{Free: free, Total: len(free), FreeCount: count})
}

package handlers

import (
	"net/http"

	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/marmos91/indexfs/pkg/registry"
)

// FileHandler handles /api/v1/disks/{disk}/files.
type FileHandler struct {
	registry *registry.Registry
}

func NewFileHandler(registry *registry.Registry) *FileHandler {
	return &FileHandler{registry: registry}
}

// CreateFileRequest is the request body for POST .../files.
type CreateFileRequest struct {
	Name   string `json:"name"`
	SizeKB *int   `json:"size_kb"`
}

// ContentRequest is the body of PUT .../files/{name}/content and the
// payload of the matching GET.
type ContentRequest struct {
	Content string `json:"content"`
}

// List handles GET .../files and returns the inode table.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	inodes, err := svc.ListInodes(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if inodes == nil {
		inodes = []alloc.Inode{}
	}
	OK(w, inodes)
}

// Create handles POST .../files.
func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}

	var req CreateFileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.SizeKB == nil {
		BadRequest(w, "size_kb is required")
		return
	}

	if err := svc.CreateFile(r.Context(), req.Name, *req.SizeKB); err != nil {
		writeStoreError(w, r, err)
		return
	}

	ino, err := svc.Stat(r.Context(), req.Name)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	Created(w, ino)
}

// Get handles GET .../files/{name}.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	ino, err := svc.Stat(r.Context(), fileName(r))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	OK(w, ino)
}

// Delete handles DELETE .../files/{name}.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	name := fileName(r)
	if err := svc.DeleteFile(r.Context(), name); err != nil {
		writeStoreError(w, r, err)
		return
	}
	OK(w, map[string]string{"deleted": name})
}

// ReadContent handles GET .../files/{name}/content.
func (h *FileHandler) ReadContent(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	content, err := svc.ReadFile(r.Context(), fileName(r))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	OK(w, ContentRequest{Content: content})
}

// WriteContent handles PUT .../files/{name}/content.
func (h *FileHandler) WriteContent(w http.ResponseWriter, r *http.Request) {
	svc, ok := diskOrError(w, r, h.registry)
	if !ok {
		return
	}
	var req ContentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	name := fileName(r)
	if err := svc.WriteFile(r.Context(), name, req.Content); err != nil {
		writeStoreError(w, r, err)
		return
	}
	OK(w, map[string]any{"name": name, "bytes": len(req.Content)})
}

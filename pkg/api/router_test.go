package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/marmos91/indexfs/pkg/api/handlers"
	"github.com/marmos91/indexfs/pkg/registry"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
}

func newTestRouter(t *testing.T, disks ...string) (http.Handler, *registry.Registry) {
	t.Helper()
	reg := registry.New(nil)
	for _, d := range disks {
		_, err := reg.Create(context.Background(), d, 8, 4096)
		require.NoError(t, err)
	}
	return NewRouter(reg), reg
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealthRoutes(t *testing.T) {
	h, reg := newTestRouter(t)

	w, env := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", env.Status)

	w, env = do(t, h, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", env.Status)
	assert.Equal(t, "no disks configured", env.Error)

	_, err := reg.Create(context.Background(), "main", 8, 4096)
	require.NoError(t, err)
	w, _ = do(t, h, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestRequestIDHeaderIsHonoured(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFileLifecycle(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	base := "/api/v1/disks/main/files"

	w, env := do(t, h, http.MethodPost, base, map[string]any{"name": "report", "size_kb": 5000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ino alloc.Inode
	require.NoError(t, json.Unmarshal(env.Data, &ino))
	assert.Equal(t, 0, ino.IndexBlock)
	assert.Equal(t, []int{1, 2}, ino.DataBlocks)

	w, env = do(t, h, http.MethodPost, base, map[string]any{"name": "report", "size_kb": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, handlers.CodeConflict, env.Code)

	w, _ = do(t, h, http.MethodPut, base+"/report/content", map[string]any{"content": "hello world"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, h, http.MethodGet, base+"/report/content", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var content handlers.ContentRequest
	require.NoError(t, json.Unmarshal(env.Data, &content))
	assert.Equal(t, "hello world", content.Content)

	w, env = do(t, h, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inodes []alloc.Inode
	require.NoError(t, json.Unmarshal(env.Data, &inodes))
	require.Len(t, inodes, 1)

	w, env = do(t, h, http.MethodGet, "/api/v1/disks/main/blocks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var blocks handlers.BlockMapResponse
	require.NoError(t, json.Unmarshal(env.Data, &blocks))
	assert.Equal(t, 8, blocks.Total)
	assert.Equal(t, 5, blocks.FreeCount)
	assert.Equal(t, []bool{false, false, false, true, true, true, true, true}, blocks.Free)

	w, _ = do(t, h, http.MethodDelete, base+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, h, http.MethodGet, base+"/report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, handlers.CodeNotFound, env.Code)
}

func TestEmptyInodeListIsArray(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	w, env := do(t, h, http.MethodGet, "/api/v1/disks/main/files", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestErrorMapping(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	base := "/api/v1/disks/main/files"

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"UnknownDisk", http.MethodGet, "/api/v1/disks/nope/files", nil, http.StatusNotFound, handlers.CodeNotFound},
		{"MissingFile", http.MethodGet, base + "/ghost/content", nil, http.StatusNotFound, handlers.CodeNotFound},
		{"DeleteMissing", http.MethodDelete, base + "/ghost", nil, http.StatusNotFound, handlers.CodeNotFound},
		{"WriteMissing", http.MethodPut, base + "/ghost/content", map[string]any{"content": "x"}, http.StatusNotFound, handlers.CodeNotFound},
		{"TooLarge", http.MethodPost, base, map[string]any{"name": "huge", "size_kb": 8 * 4096}, http.StatusInsufficientStorage, handlers.CodeInsufficientSpace},
		{"NegativeSize", http.MethodPost, base, map[string]any{"name": "neg", "size_kb": -1}, http.StatusBadRequest, handlers.CodeValidation},
		{"EmptyName", http.MethodPost, base, map[string]any{"name": "", "size_kb": 1}, http.StatusBadRequest, handlers.CodeValidation},
		{"MissingSize", http.MethodPost, base, map[string]any{"name": "x"}, http.StatusBadRequest, handlers.CodeValidation},
		{"UnknownField", http.MethodPost, base, map[string]any{"name": "x", "size_kb": 1, "color": "red"}, http.StatusBadRequest, handlers.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.code, env.Code)
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/disks/main/files", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiskRoutes(t *testing.T) {
	h, reg := newTestRouter(t, "main")

	w, env := do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "scratch", "total_blocks": 16})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var info map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "scratch", info["name"])
	assert.EqualValues(t, 16, info["total_blocks"])
	assert.EqualValues(t, 4096, info["block_size"])
	assert.NotEmpty(t, info["id"])

	w, env = do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "scratch"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, handlers.CodeConflict, env.Code)

	w, env = do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "bad", "total_blocks": -4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "huge", "total_blocks": int64(1) << 40})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handlers.CodeValidation, env.Code)

	w, env = do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "a/b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handlers.CodeValidation, env.Code)

	w, env = do(t, h, http.MethodGet, "/api/v1/disks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "main", list[0]["name"])
	assert.Equal(t, "scratch", list[1]["name"])

	w, _ = do(t, h, http.MethodGet, "/api/v1/disks/scratch", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/api/v1/disks/scratch", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reg.Count())

	w, _ = do(t, h, http.MethodDelete, "/api/v1/disks/scratch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEscapedFileName(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	w, _ := do(t, h, http.MethodPost, "/api/v1/disks/main/files", map[string]any{"name": "a/b c", "size_kb": 0})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, h, http.MethodGet, "/api/v1/disks/main/files/a%2Fb%20c", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ino alloc.Inode
	require.NoError(t, json.Unmarshal(env.Data, &ino))
	assert.Equal(t, "a/b c", ino.Name)

	t.Run("percent sign in name is decoded once", func(t *testing.T) {
		w, _ := do(t, h, http.MethodPost, "/api/v1/disks/main/files", map[string]any{"name": "a%41", "size_kb": 0})
		require.Equal(t, http.StatusCreated, w.Code)
		w, _ = do(t, h, http.MethodPost, "/api/v1/disks/main/files", map[string]any{"name": "aA", "size_kb": 0})
		require.Equal(t, http.StatusCreated, w.Code)

		w, env := do(t, h, http.MethodGet, "/api/v1/disks/main/files/a%2541", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var ino alloc.Inode
		require.NoError(t, json.Unmarshal(env.Data, &ino))
		assert.Equal(t, "a%41", ino.Name)

		w, _ = do(t, h, http.MethodDelete, "/api/v1/disks/main/files/a%2541", nil)
		require.Equal(t, http.StatusOK, w.Code)
		w, _ = do(t, h, http.MethodGet, "/api/v1/disks/main/files/aA", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("escaped disk and file names together", func(t *testing.T) {
		w, _ := do(t, h, http.MethodPost, "/api/v1/disks", map[string]any{"name": "my disk"})
		require.Equal(t, http.StatusCreated, w.Code)
		w, _ = do(t, h, http.MethodPost, "/api/v1/disks/my%20disk/files", map[string]any{"name": "x/y", "size_kb": 1})
		require.Equal(t, http.StatusCreated, w.Code)

		w, _ = do(t, h, http.MethodGet, "/api/v1/disks/my%20disk/files/x%2Fy", nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w, _ = do(t, h, http.MethodDelete, "/api/v1/disks/my%20disk", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHugeFileSizeIsInsufficientSpace(t *testing.T) {
	h, _ := newTestRouter(t, "main")
	w, env := do(t, h, http.MethodPost, "/api/v1/disks/main/files", map[string]any{"name": "huge", "size_kb": math.MaxInt})
	assert.Equal(t, http.StatusInsufficientStorage, w.Code, w.Body.String())
	assert.Equal(t, handlers.CodeInsufficientSpace, env.Code)
}

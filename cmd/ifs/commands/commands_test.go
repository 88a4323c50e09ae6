package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	configcmd "github.com/marmos91/indexfs/cmd/ifs/commands/config"
	"github.com/marmos91/indexfs/pkg/api"
	"github.com/marmos91/indexfs/pkg/registry"
)

// newTestServer serves a registry holding one 16-block disk named "main".
func newTestServer(t *testing.T) string {
	t.Helper()
	reg := registry.New(nil)
	_, err := reg.Create(context.Background(), "main", 16, 4096)
	require.NoError(t, err)

	server := httptest.NewServer(api.NewRouter(reg))
	t.Cleanup(server.Close)
	return server.URL
}

// run executes ifs with args on a fresh command tree.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFileCommands(t *testing.T) {
	url := newTestServer(t)
	remote := []string{"--server", url, "--disk", "main", "--no-color"}
	with := func(args ...string) []string { return append(append([]string{}, remote...), args...) }

	out, err := run(t, with("file", "create", "report", "--size", "5000")...)
	require.NoError(t, err)
	assert.Equal(t, cmdutil.MsgFileCreated+"\n", out)

	out, err = run(t, with("file", "create", "report", "--size", "1")...)
	assert.ErrorIs(t, err, cmdutil.ErrSilent)
	assert.Equal(t, cmdutil.MsgFileExists+"\n", out)

	out, err = run(t, with("file", "write", "report", "--content", "hello")...)
	require.NoError(t, err)
	assert.Equal(t, cmdutil.MsgContentWritten+"\n", out)

	out, err = run(t, with("file", "read", "report")...)
	require.NoError(t, err)
	assert.Equal(t, "Content: hello\n", out)

	out, err = run(t, with("-o", "json", "file", "stat", "report")...)
	require.NoError(t, err)
	var ino struct {
		IndexBlock int   `json:"index_block"`
		DataBlocks []int `json:"data_blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ino))
	assert.Equal(t, 0, ino.IndexBlock)
	assert.Equal(t, []int{1, 2}, ino.DataBlocks)

	out, err = run(t, with("blocks")...)
	require.NoError(t, err)
	assert.Equal(t, "Blocks 00-07:  A A A F F F F F\nBlocks 08-15:  F F F F F F F F\n", out)

	out, err = run(t, with("inodes")...)
	require.NoError(t, err)
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "[1 2]")

	out, err = run(t, with("file", "create", "huge", "--size", "100000")...)
	assert.ErrorIs(t, err, cmdutil.ErrSilent)
	assert.Equal(t, cmdutil.MsgNoSpace+"\n", out)

	out, err = run(t, with("file", "delete", "report")...)
	require.NoError(t, err)
	assert.Equal(t, cmdutil.MsgFileDeleted+"\n", out)

	out, err = run(t, with("file", "read", "report")...)
	assert.ErrorIs(t, err, cmdutil.ErrSilent)
	assert.Equal(t, cmdutil.MsgFileNotFound+"\n", out)

	out, err = run(t, with("inodes")...)
	require.NoError(t, err)
	assert.Equal(t, "No files on disk \"main\".\n", out)
}

func TestFileWriteFlags(t *testing.T) {
	url := newTestServer(t)

	_, err := run(t, "--server", url, "file", "write", "a")
	assert.ErrorContains(t, err, "exactly one of --content or --from-file")

	path := filepath.Join(t.TempDir(), "content.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0644))

	_, err = run(t, "--server", url, "--disk", "main", "file", "create", "a", "--size", "0")
	require.NoError(t, err)
	_, err = run(t, "--server", url, "--disk", "main", "file", "write", "a", "--from-file", path)
	require.NoError(t, err)

	out, err := run(t, "--server", url, "--disk", "main", "-o", "yaml", "file", "read", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "content: from disk")
}

func TestDiskCommands(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, "--server", url, "--no-color", "disk", "create", "scratch", "--blocks", "8", "--block-size", "1Ki")
	require.NoError(t, err)
	assert.Equal(t, "Disk 'scratch' created (8 blocks, block size 1Ki)\n", out)

	out, err = run(t, "--server", url, "disk", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "scratch")

	out, err = run(t, "--server", url, "disk", "usage", "scratch")
	require.NoError(t, err)
	assert.Contains(t, out, "0 (0.0%)")

	_, err = run(t, "--server", url, "disk", "create", "scratch")
	assert.Error(t, err)

	out, err = run(t, "--server", url, "--no-color", "disk", "delete", "scratch", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "disk 'scratch' deleted successfully")

	_, err = run(t, "--server", url, "disk", "usage", "scratch")
	assert.ErrorContains(t, err, "NOT_FOUND")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err)

	out, err = run(t, "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation: OK")
	assert.Contains(t, out, "BLOCK SIZE")
	assert.Regexp(t, `default\s+64\s+4Ki`, out)

	out, err = run(t, "--config", path, "-o", "json", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"Disks"`)

	out, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "config", "validate")
	assert.ErrorContains(t, err, "configuration file not found")
	assert.Empty(t, out)
}

func TestConfigSchema(t *testing.T) {
	schema, err := configcmd.Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(schema, &doc))
	assert.Equal(t, "indexfs Configuration", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "disks")
	assert.Contains(t, props, "shutdown_timeout")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "ifs")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

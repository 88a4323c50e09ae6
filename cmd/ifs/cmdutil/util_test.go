package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
	"github.com/marmos91/indexfs/pkg/apiclient"
	"github.com/marmos91/indexfs/pkg/config"
)

// withFlags replaces the global flags for one test.
func withFlags(t *testing.T, f GlobalFlags) {
	t.Helper()
	saved := *Flags
	*Flags = f
	t.Cleanup(func() { *Flags = saved })
}

func TestServerURL(t *testing.T) {
	withFlags(t, GlobalFlags{})
	t.Setenv(EnvServer, "")
	assert.Equal(t, apiclient.DefaultServerURL, ServerURL())

	t.Setenv(EnvServer, "http://env:1")
	assert.Equal(t, "http://env:1", ServerURL())

	Flags.ServerURL = "http://flag:2"
	assert.Equal(t, "http://flag:2", ServerURL())
}

func TestDiskName(t *testing.T) {
	withFlags(t, GlobalFlags{})
	t.Setenv(EnvDisk, "")
	assert.Equal(t, config.DefaultDiskName, DiskName())

	t.Setenv(EnvDisk, "scratch")
	assert.Equal(t, "scratch", DiskName())

	Flags.Disk = "main"
	assert.Equal(t, "main", DiskName())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want storeerrors.ErrorCode
	}{
		{"local duplicate", storeerrors.NewDuplicateNameError("a"), storeerrors.ErrDuplicateName},
		{"wrapped local not found", fmt.Errorf("read: %w", storeerrors.NewNotFoundError("a")), storeerrors.ErrNotFound},
		{"api conflict", &apiclient.APIError{StatusCode: http.StatusConflict, Code: "CONFLICT"}, storeerrors.ErrDuplicateName},
		{"api no space", &apiclient.APIError{StatusCode: http.StatusInsufficientStorage, Code: "INSUFFICIENT_SPACE"}, storeerrors.ErrInsufficientSpace},
		{"api not found", &apiclient.APIError{Code: "NOT_FOUND"}, storeerrors.ErrNotFound},
		{"api validation", &apiclient.APIError{Code: "VALIDATION_ERROR"}, storeerrors.ErrInvalidInput},
		{"api internal", &apiclient.APIError{Code: "INTERNAL_ERROR"}, 0},
		{"plain", errors.New("connection refused"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestFileMessage(t *testing.T) {
	msg, ok := FileMessage(storeerrors.NewInsufficientSpaceError("big", 10, 2))
	assert.True(t, ok)
	assert.Equal(t, MsgNoSpace, msg)

	msg, ok = FileMessage(&apiclient.APIError{Code: "CONFLICT"})
	assert.True(t, ok)
	assert.Equal(t, MsgFileExists, msg)

	_, ok = FileMessage(storeerrors.NewInvalidInputError("empty name"))
	assert.False(t, ok)
}

func TestReportFileError(t *testing.T) {
	withFlags(t, GlobalFlags{Output: "table", NoColor: true})

	var buf bytes.Buffer
	err := ReportFileError(&buf, storeerrors.NewNotFoundError("a"))
	assert.Equal(t, ErrSilent, err)
	assert.Equal(t, MsgFileNotFound+"\n", buf.String())

	Flags.Output = "json"
	buf.Reset()
	orig := storeerrors.NewNotFoundError("a")
	assert.Equal(t, error(orig), ReportFileError(&buf, orig))
	assert.Empty(t, buf.String())
}

func TestPrintOutput(t *testing.T) {
	withFlags(t, GlobalFlags{Output: "table", NoColor: true})

	var buf bytes.Buffer
	require.NoError(t, PrintOutput(&buf, []string{}, true, "No files."))
	assert.Equal(t, "No files.\n", buf.String())

	Flags.Output = "json"
	buf.Reset()
	require.NoError(t, PrintOutput(&buf, []string{}, true, "No files."))
	assert.Equal(t, "[]\n", buf.String())

	Flags.Output = "xml"
	assert.Error(t, PrintOutput(&buf, nil, true, ""))
}

func TestPrintResult(t *testing.T) {
	withFlags(t, GlobalFlags{Output: "yaml"})

	var buf bytes.Buffer
	require.NoError(t, PrintResult(&buf, map[string]int{"index_block": 0}, MsgFileCreated))
	assert.Equal(t, "index_block: 0\n", buf.String())
}

func TestRunDeleteWithConfirmationForce(t *testing.T) {
	withFlags(t, GlobalFlags{Output: "table", NoColor: true})

	called := false
	var buf bytes.Buffer
	err := RunDeleteWithConfirmation(&buf, "disk", "scratch", true, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Contains(t, buf.String(), "disk 'scratch' deleted successfully")
}

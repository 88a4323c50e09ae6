// Package cmdutil provides shared utilities for ifs commands.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/internal/cli/prompt"
	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
	"github.com/marmos91/indexfs/pkg/apiclient"
	"github.com/marmos91/indexfs/pkg/config"
)

// Environment fallbacks for the remote flags.
const (
	EnvServer = "INDEXFS_SERVER"
	EnvDisk   = "INDEXFS_DISK"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	ConfigFile string
	ServerURL  string
	Disk       string
	Output     string
	NoColor    bool
	Verbose    bool
}

// ServerURL resolves --server, then INDEXFS_SERVER, then the default.
func ServerURL() string {
	if Flags.ServerURL != "" {
		return Flags.ServerURL
	}
	if v := os.Getenv(EnvServer); v != "" {
		return v
	}
	return apiclient.DefaultServerURL
}

// DiskName resolves --disk, then INDEXFS_DISK, then the default disk.
func DiskName() string {
	if Flags.Disk != "" {
		return Flags.Disk
	}
	if v := os.Getenv(EnvDisk); v != "" {
		return v
	}
	return config.DefaultDiskName
}

// GetClient returns an API client for the resolved server.
func GetClient() *apiclient.Client {
	return apiclient.New(ServerURL())
}

// GetOutputFormatParsed returns the parsed -o value.
func GetOutputFormatParsed() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// NewPrinter returns a printer for w honoring -o and --no-color.
func NewPrinter(w io.Writer) (*output.Printer, error) {
	format, err := GetOutputFormatParsed()
	if err != nil {
		return nil, err
	}
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	return output.NewPrinter(w, format, !Flags.NoColor && !noColorEnv), nil
}

// PrintOutput prints data in the selected format. In table format emptyMsg
// replaces an empty result.
func PrintOutput(w io.Writer, data any, isEmpty bool, emptyMsg string) error {
	p, err := NewPrinter(w)
	if err != nil {
		return err
	}
	if isEmpty && p.Format() == output.FormatTable {
		p.Println(emptyMsg)
		return nil
	}
	return p.Print(data)
}

// PrintResult prints data for JSON/YAML and msg for table output.
func PrintResult(w io.Writer, data any, msg string) error {
	p, err := NewPrinter(w)
	if err != nil {
		return err
	}
	return p.Result(data, msg)
}

// PrintSuccess prints a success message if the output format is table.
func PrintSuccess(w io.Writer, msg string) {
	p, err := NewPrinter(w)
	if err != nil || p.Format() != output.FormatTable {
		return
	}
	p.Success(msg)
}

// RunDeleteWithConfirmation prompts for confirmation (unless force is
// true) and runs deleteFn.
func RunDeleteWithConfirmation(w io.Writer, resourceType, name string, force bool, deleteFn func() error) error {
	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete %s '%s'", resourceType, name), force)
	if err != nil {
		return HandleAbort(w, err)
	}
	if !confirmed {
		_, _ = fmt.Fprintln(w, "Aborted.")
		return nil
	}

	if err := deleteFn(); err != nil {
		return err
	}

	PrintSuccess(w, fmt.Sprintf("%s '%s' deleted successfully", resourceType, name))
	return nil
}

// HandleAbort returns nil after printing "Aborted." when err is a prompt
// abort, otherwise err.
func HandleAbort(w io.Writer, err error) error {
	if prompt.IsAborted(err) {
		_, _ = fmt.Fprintln(w, "\nAborted.")
		return nil
	}
	return err
}

// ErrorCode extracts the allocation error code from a local store error
// or from an API error response. It returns 0 for anything else.
func ErrorCode(err error) storeerrors.ErrorCode {
	if code := storeerrors.CodeOf(err); code != 0 {
		return code
	}
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return 0
	}
	switch {
	case apiErr.IsConflict():
		return storeerrors.ErrDuplicateName
	case apiErr.IsInsufficientSpace():
		return storeerrors.ErrInsufficientSpace
	case apiErr.IsNotFound():
		return storeerrors.ErrNotFound
	case apiErr.IsValidationError():
		return storeerrors.ErrInvalidInput
	}
	return 0
}

// Simulator messages for file operations.
const (
	MsgFileCreated    = "File created successfully."
	MsgFileExists     = "File already exists."
	MsgNoSpace        = "Not enough disk space."
	MsgFileDeleted    = "File deleted."
	MsgFileNotFound   = "File not found."
	MsgContentWritten = "Content written."
)

// FileMessage maps a failed file operation to the simulator's message.
// ok is false for errors without one (invalid input, transport failures).
func FileMessage(err error) (msg string, ok bool) {
	switch ErrorCode(err) {
	case storeerrors.ErrDuplicateName:
		return MsgFileExists, true
	case storeerrors.ErrInsufficientSpace:
		return MsgNoSpace, true
	case storeerrors.ErrNotFound:
		return MsgFileNotFound, true
	}
	return "", false
}

// ReportFileError prints the simulator message for err in table format
// and returns a plain error so the command exits non-zero.
func ReportFileError(w io.Writer, err error) error {
	msg, ok := FileMessage(err)
	if !ok {
		return err
	}
	p, perr := NewPrinter(w)
	if perr == nil && p.Format() == output.FormatTable {
		p.Error(msg)
		return ErrSilent
	}
	return err
}

// ErrSilent signals a failure whose message was already printed.
var ErrSilent = errors.New("command failed")

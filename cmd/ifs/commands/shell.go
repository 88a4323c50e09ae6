package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/marmos91/indexfs/cmd/ifs/cmdutil"
	"github.com/marmos91/indexfs/internal/bytesize"
	"github.com/marmos91/indexfs/internal/cli/output"
	"github.com/marmos91/indexfs/internal/cli/prompt"
	"github.com/marmos91/indexfs/internal/logger"
	"github.com/marmos91/indexfs/pkg/alloc"
	"github.com/marmos91/indexfs/pkg/disk"
	"github.com/spf13/cobra"
)

// Shell menu actions.
const (
	actionCreate = "create"
	actionDelete = "delete"
	actionWrite  = "write"
	actionRead   = "read"
	actionInodes = "inodes"
	actionBlocks = "blocks"
	actionQuit   = "quit"
)

var shellMenu = []prompt.SelectOption{
	{Label: "Create File", Value: actionCreate},
	{Label: "Delete File", Value: actionDelete},
	{Label: "Write File", Value: actionWrite},
	{Label: "Read File", Value: actionRead},
	{Label: "Show Inode Table", Value: actionInodes},
	{Label: "Show Free Blocks", Value: actionBlocks},
	{Label: "Quit", Value: actionQuit},
}

func newShellCmd() *cobra.Command {
	var (
		blocks    int
		blockSize string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive simulator on a local disk",
		Long: `Run the indexed allocation simulator interactively.

The shell owns a fresh in-memory disk; nothing is shared with a running
server and everything is discarded on exit.

Examples:
  # 64 blocks of 4Ki
  ifs shell

  # A smaller disk to watch allocation fail sooner
  ifs shell --blocks 16 --block-size 1Ki`,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := bytesize.Parse(blockSize)
			if err != nil {
				return fmt.Errorf("invalid --block-size: %w", err)
			}

			level := "WARN"
			if cmdutil.Flags.Verbose {
				level = "DEBUG"
			}
			logger.InitWithWriter(os.Stderr, level, "text", !cmdutil.Flags.NoColor)

			svc, err := disk.New("shell", blocks, size.Int())
			if err != nil {
				return err
			}
			return newShellSession(svc, cmd.OutOrStdout()).loop(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&blocks, "blocks", alloc.DefaultTotalBlocks, "Number of blocks on the disk")
	cmd.Flags().StringVar(&blockSize, "block-size", bytesize.ByteSize(alloc.DefaultBlockSize).String(), "Block size divisor (e.g. 4096, 4Ki)")
	return cmd
}

// shellSession renders disk operations as simulator messages.
type shellSession struct {
	disk    *disk.Service
	out     io.Writer
	printer *output.Printer
}

func newShellSession(svc *disk.Service, out io.Writer) *shellSession {
	return &shellSession{
		disk:    svc,
		out:     out,
		printer: output.NewPrinter(out, output.FormatTable, false),
	}
}

func (s *shellSession) loop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	info := s.disk.Info()
	s.printer.Printf("Indexed allocation simulator: %d blocks, block size %s\n", info.TotalBlocks, bytesize.ByteSize(info.BlockSize))

	for {
		action, err := prompt.Select("Action", shellMenu)
		if err != nil {
			if prompt.IsAborted(err) {
				return nil
			}
			return err
		}
		if action == actionQuit {
			return nil
		}
		if err := s.dispatch(ctx, action); err != nil {
			if prompt.IsAborted(err) {
				continue
			}
			return err
		}
	}
}

// dispatch collects the inputs of one menu action and runs it.
func (s *shellSession) dispatch(ctx context.Context, action string) error {
	switch action {
	case actionCreate:
		name, err := prompt.InputRequired("Enter filename")
		if err != nil {
			return err
		}
		size, err := prompt.InputNonNegativeInt("Enter size in KB", 0)
		if err != nil {
			return err
		}
		s.createFile(ctx, name, size)
	case actionDelete:
		name, err := prompt.InputRequired("Enter filename")
		if err != nil {
			return err
		}
		s.deleteFile(ctx, name)
	case actionWrite:
		name, err := prompt.InputRequired("Filename")
		if err != nil {
			return err
		}
		content, err := prompt.Input("Enter file content", "")
		if err != nil {
			return err
		}
		s.writeFile(ctx, name, content)
	case actionRead:
		name, err := prompt.InputRequired("Filename")
		if err != nil {
			return err
		}
		s.readFile(ctx, name)
	case actionInodes:
		s.showInodes(ctx)
	case actionBlocks:
		s.showBlocks(ctx)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

func (s *shellSession) fail(err error) {
	if msg, ok := cmdutil.FileMessage(err); ok {
		s.printer.Println(msg)
		return
	}
	s.printer.Printf("Error: %v\n", err)
}

func (s *shellSession) createFile(ctx context.Context, name string, sizeKB int) {
	if err := s.disk.CreateFile(ctx, name, sizeKB); err != nil {
		s.fail(err)
		return
	}
	s.printer.Println(cmdutil.MsgFileCreated)
}

func (s *shellSession) deleteFile(ctx context.Context, name string) {
	if err := s.disk.DeleteFile(ctx, name); err != nil {
		s.fail(err)
		return
	}
	s.printer.Println(cmdutil.MsgFileDeleted)
}

func (s *shellSession) writeFile(ctx context.Context, name, content string) {
	if err := s.disk.WriteFile(ctx, name, content); err != nil {
		s.fail(err)
		return
	}
	s.printer.Println(cmdutil.MsgContentWritten)
}

func (s *shellSession) readFile(ctx context.Context, name string) {
	content, err := s.disk.ReadFile(ctx, name)
	if err != nil {
		s.fail(err)
		return
	}
	s.printer.Printf("Content: %s\n", content)
}

func (s *shellSession) showInodes(ctx context.Context) {
	inodes, err := s.disk.ListInodes(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	s.printer.Println("\nINODE TABLE:")
	if len(inodes) == 0 {
		s.printer.Println("(no files)")
		return
	}
	_ = s.printer.Print(output.InodeTable(inodes))
}

func (s *shellSession) showBlocks(ctx context.Context) {
	free, err := s.disk.FreeBlockMap(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	s.printer.Println("\nFREE BLOCKS STATUS:")
	_ = s.printer.Print(output.BlockMap(free))
}

package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/marmos91/indexfs/internal/bytesize"
	"github.com/marmos91/indexfs/pkg/alloc"
)

// BlocksPerRow is the width of one block map line.
const BlocksPerRow = 8

// InodeTable renders a disk's file table.
type InodeTable []alloc.Inode

func (t InodeTable) Headers() []string {
	return []string{"Name", "Size (KB)", "Index", "Blocks"}
}

func (t InodeTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, ino := range t {
		rows = append(rows, []string{
			ino.Name,
			strconv.Itoa(ino.SizeKB),
			strconv.Itoa(ino.IndexBlock),
			FormatBlockList(ino.DataBlocks),
		})
	}
	return rows
}

// FormatBlockList formats data block numbers as "[1 2 3]".
func FormatBlockList(blocks []int) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = strconv.Itoa(b)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BlockMap renders free-block availability eight blocks per line:
//
//	Blocks 00-07:  A A A F F F F F
type BlockMap []bool

func (m BlockMap) Render(w io.Writer) error {
	for start := 0; start < len(m); start += BlocksPerRow {
		end := min(start+BlocksPerRow, len(m))

		cells := make([]string, 0, end-start)
		for _, free := range m[start:end] {
			if free {
				cells = append(cells, "F")
			} else {
				cells = append(cells, "A")
			}
		}

		if _, err := fmt.Fprintf(w, "Blocks %02d-%02d:  %s\n", start, end-1, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}

// DiskRow is the table view of one disk.
type DiskRow struct {
	Name        string
	ID          string
	CreatedAt   time.Time
	TotalBlocks int
	FreeBlocks  int
	Files       int
	BlockSize   int
}

// DiskTable renders a disk listing.
type DiskTable []DiskRow

func (t DiskTable) Headers() []string {
	return []string{"Name", "Blocks", "Free", "Files", "Block Size", "Created"}
}

func (t DiskTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, d := range t {
		rows = append(rows, []string{
			d.Name,
			strconv.Itoa(d.TotalBlocks),
			strconv.Itoa(d.FreeBlocks),
			strconv.Itoa(d.Files),
			bytesize.ByteSize(d.BlockSize).Human(),
			FormatTime(d.CreatedAt),
		})
	}
	return rows
}

// UsagePairs returns the key/value view of a disk's usage counters.
func UsagePairs(name string, u alloc.Usage) [][2]string {
	pct := 0.0
	if u.TotalBlocks > 0 {
		pct = float64(u.UsedBlocks) / float64(u.TotalBlocks) * 100
	}
	return [][2]string{
		{"Disk", name},
		{"Total blocks", strconv.Itoa(u.TotalBlocks)},
		{"Used blocks", fmt.Sprintf("%d (%.1f%%)", u.UsedBlocks, pct)},
		{"Free blocks", strconv.Itoa(u.FreeBlocks)},
		{"Files", strconv.Itoa(u.Files)},
		{"Block size", bytesize.ByteSize(u.BlockSize).Human()},
	}
}

// LocalTimeFormat is used for timestamps in tables.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatTime renders t in local time, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(LocalTimeFormat)
}

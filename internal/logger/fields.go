package logger

import (
	"log/slog"
)

// Standard field keys. Use these consistently so log lines can be queried
// across the server, CLI and shell.
const (
	KeyTraceID   = "trace_id"
	KeySpanID    = "span_id"
	KeyRequestID = "request_id"
	KeyOperation = "operation"

	// Simulated disk
	KeyDisk        = "disk"
	KeyDiskID      = "disk_id"
	KeyTotalBlocks = "total_blocks"
	KeyBlockSize   = "block_size"
	KeyFreeBlocks  = "free_blocks"

	// File table
	KeyFilename   = "filename"
	KeySizeKB     = "size_kb"
	KeyIndexBlock = "index_block"
	KeyDataBlocks = "data_blocks"
	KeyBytes      = "bytes"

	KeyDurationMs = "duration_ms"
	KeyError      = "error"
	KeyErrorCode  = "error_code"
)

// Disk returns a slog.Attr for the simulated disk name
func Disk(name string) slog.Attr {
	return slog.String(KeyDisk, name)
}

// Filename returns a slog.Attr for a file-table name
func Filename(name string) slog.Attr {
	return slog.String(KeyFilename, name)
}

// SizeKB returns a slog.Attr for a declared file size
func SizeKB(size int) slog.Attr {
	return slog.Int(KeySizeKB, size)
}

// IndexBlock returns a slog.Attr for an index block number
func IndexBlock(blk int) slog.Attr {
	return slog.Int(KeyIndexBlock, blk)
}

// DataBlocks returns a slog.Attr for a list of data blocks
func DataBlocks(blocks []int) slog.Attr {
	return slog.Any(KeyDataBlocks, blocks)
}

// FreeBlocks returns a slog.Attr for the free block count
func FreeBlocks(n int) slog.Attr {
	return slog.Int(KeyFreeBlocks, n)
}

// Err returns a slog.Attr for an error. A nil error yields an empty attr,
// which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a store error code name
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

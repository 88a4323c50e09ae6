package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for disk operations.
const (
	AttrDisk        = "indexfs.disk"
	AttrOperation   = "indexfs.operation"
	AttrFilename    = "indexfs.filename"
	AttrSizeKB      = "indexfs.size_kb"
	AttrIndexBlock  = "indexfs.index_block"
	AttrBlockCount  = "indexfs.block_count"
	AttrFreeBlocks  = "indexfs.free_blocks"
	AttrBytes       = "indexfs.bytes"
	AttrErrorCode   = "indexfs.error_code"
	AttrHTTPRoute   = "http.route"
	AttrHTTPRequest = "http.request_id"
)

// Span names. Disk operations are "disk.<op>".
const (
	SpanDiskCreate = "disk.create"
	SpanDiskDelete = "disk.delete"
	SpanDiskWrite  = "disk.write"
	SpanDiskRead   = "disk.read"
	SpanDiskStat   = "disk.stat"
	SpanDiskList   = "disk.list"
	SpanDiskBlocks = "disk.blocks"
	SpanDiskUsage  = "disk.usage"

	SpanRegistryAdd    = "registry.add"
	SpanRegistryRemove = "registry.remove"
)

func Disk(name string) attribute.KeyValue {
	return attribute.String(AttrDisk, name)
}

func Filename(name string) attribute.KeyValue {
	return attribute.String(AttrFilename, name)
}

func SizeKB(size int) attribute.KeyValue {
	return attribute.Int(AttrSizeKB, size)
}

func IndexBlock(blk int) attribute.KeyValue {
	return attribute.Int(AttrIndexBlock, blk)
}

func BlockCount(n int) attribute.KeyValue {
	return attribute.Int(AttrBlockCount, n)
}

func FreeBlocks(n int) attribute.KeyValue {
	return attribute.Int(AttrFreeBlocks, n)
}

func Bytes(n int) attribute.KeyValue {
	return attribute.Int(AttrBytes, n)
}

func ErrorCode(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}

// StartDiskSpan starts a "disk.<operation>" span tagged with the disk name.
func StartDiskSpan(ctx context.Context, operation, disk string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := make([]attribute.KeyValue, 0, len(attrs)+2)
	all = append(all, Disk(disk), attribute.String(AttrOperation, operation))
	all = append(all, attrs...)
	return StartSpan(ctx, "disk."+operation, trace.WithAttributes(all...))
}

// Package alloc implements an indexed file allocation scheme over a fixed,
// in-memory pool of blocks.
//
// Every file owns exactly one index block plus ceil(sizeKB / blockSize) data
// blocks. Blocks are always handed out lowest-free-index first, so a given
// sequence of operations always produces the same layout.
//
// A Store is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves (see pkg/disk).
package alloc

import (
	"fmt"
	"math"

	storeerrors "github.com/marmos91/indexfs/pkg/alloc/errors"
)

const (
	// DefaultTotalBlocks is the pool size of the reference configuration.
	DefaultTotalBlocks = 64

	// DefaultBlockSize is the divisor used to turn a declared size into a
	// data-block count. It is a capacity unit, not a byte count.
	DefaultBlockSize = 4096

	// MaxTotalBlocks caps the pool size. The availability vector is held
	// in memory, one bool per block.
	MaxTotalBlocks = 1 << 24
)

// Inode is a snapshot of one file-table entry.
type Inode struct {
	Name       string `json:"name" yaml:"name"`
	SizeKB     int    `json:"size_kb" yaml:"size_kb"`
	IndexBlock int    `json:"index_block" yaml:"index_block"`
	DataBlocks []int  `json:"data_blocks" yaml:"data_blocks"`
}

// BlockCount returns the number of blocks the file holds, index block included.
func (i Inode) BlockCount() int {
	return len(i.DataBlocks) + 1
}

// Usage summarizes pool occupancy.
type Usage struct {
	TotalBlocks int `json:"total_blocks" yaml:"total_blocks"`
	FreeBlocks  int `json:"free_blocks" yaml:"free_blocks"`
	UsedBlocks  int `json:"used_blocks" yaml:"used_blocks"`
	Files       int `json:"files" yaml:"files"`
	BlockSize   int `json:"block_size" yaml:"block_size"`
}

// file is the internal file-table record.
type file struct {
	sizeKB     int
	indexBlock int
	dataBlocks []int
	content    string
}

// Store owns the block-availability vector and the file table.
type Store struct {
	blockSize int
	free      []bool
	files     map[string]*file
	order     []string // insertion order, for listing
}

// New creates a Store with totalBlocks free blocks.
//
// Both arguments must be positive: blockSize is used as a divisor and an
// empty pool cannot hold even an index block. totalBlocks may not exceed
// MaxTotalBlocks.
func New(totalBlocks, blockSize int) (*Store, error) {
	if totalBlocks <= 0 {
		return nil, storeerrors.NewInvalidInputError("total blocks must be positive")
	}
	if totalBlocks > MaxTotalBlocks {
		return nil, storeerrors.NewInvalidInputError(fmt.Sprintf("total blocks must not exceed %d", MaxTotalBlocks))
	}
	if blockSize <= 0 {
		return nil, storeerrors.NewInvalidInputError("block size must be positive")
	}

	free := make([]bool, totalBlocks)
	for i := range free {
		free[i] = true
	}

	return &Store{
		blockSize: blockSize,
		free:      free,
		files:     make(map[string]*file),
	}, nil
}

// NewDefault creates a Store with the reference geometry (64 blocks, divisor 4096).
func NewDefault() *Store {
	s, _ := New(DefaultTotalBlocks, DefaultBlockSize)
	return s
}

// TotalBlocks returns the pool size.
func (s *Store) TotalBlocks() int {
	return len(s.free)
}

// BlockSize returns the size-to-blocks divisor.
func (s *Store) BlockSize() int {
	return s.blockSize
}

// RequiredDataBlocks returns ceil(sizeKB / blockSize). A zero size needs no
// data blocks.
func (s *Store) RequiredDataBlocks(sizeKB int) int {
	if sizeKB <= 0 {
		return 0
	}
	n := sizeKB / s.blockSize
	if sizeKB%s.blockSize != 0 {
		n++
	}
	return n
}

// allocate reserves one index block plus blocksNeeded data blocks.
//
// Free indices are collected in ascending order; the lowest becomes the index
// block and the next blocksNeeded become data blocks. Nothing is marked until
// the availability check has passed.
func (s *Store) allocate(name string, blocksNeeded int) (int, []int, error) {
	freeIndices := make([]int, 0, len(s.free))
	for i, isFree := range s.free {
		if isFree {
			freeIndices = append(freeIndices, i)
		}
	}

	// blocksNeeded can be near MaxInt for huge sizes; compare before adding
	// the index block.
	if blocksNeeded >= len(freeIndices) {
		needed := blocksNeeded
		if needed < math.MaxInt {
			needed++
		}
		return 0, nil, storeerrors.NewInsufficientSpaceError(name, needed, len(freeIndices))
	}

	needed := blocksNeeded + 1

	indexBlock := freeIndices[0]
	dataBlocks := make([]int, blocksNeeded)
	copy(dataBlocks, freeIndices[1:needed])

	s.free[indexBlock] = false
	for _, blk := range dataBlocks {
		s.free[blk] = false
	}

	return indexBlock, dataBlocks, nil
}

// release marks the given blocks free again.
func (s *Store) release(f *file) {
	s.free[f.indexBlock] = true
	for _, blk := range f.dataBlocks {
		s.free[blk] = true
	}
}

// CreateFile adds an empty file of the declared size.
//
// Fails with DuplicateName if the name is taken and InsufficientSpace if the
// pool cannot supply the index block plus data blocks. On failure neither the
// file table nor the block pool changes.
func (s *Store) CreateFile(name string, sizeKB int) error {
	if sizeKB < 0 {
		return storeerrors.NewInvalidInputError("size must not be negative")
	}
	if _, exists := s.files[name]; exists {
		return storeerrors.NewDuplicateNameError(name)
	}

	indexBlock, dataBlocks, err := s.allocate(name, s.RequiredDataBlocks(sizeKB))
	if err != nil {
		return err
	}

	s.files[name] = &file{
		sizeKB:     sizeKB,
		indexBlock: indexBlock,
		dataBlocks: dataBlocks,
	}
	s.order = append(s.order, name)
	return nil
}

// DeleteFile removes a file and returns exactly its blocks to the pool.
func (s *Store) DeleteFile(name string) error {
	f, exists := s.files[name]
	if !exists {
		return storeerrors.NewNotFoundError(name)
	}

	s.release(f)
	delete(s.files, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// WriteFile replaces a file's content. Content length is not checked against
// the allocated blocks and never triggers reallocation.
func (s *Store) WriteFile(name, content string) error {
	f, exists := s.files[name]
	if !exists {
		return storeerrors.NewNotFoundError(name)
	}
	f.content = content
	return nil
}

// ReadFile returns a file's content verbatim, or "" if it was never written.
func (s *Store) ReadFile(name string) (string, error) {
	f, exists := s.files[name]
	if !exists {
		return "", storeerrors.NewNotFoundError(name)
	}
	return f.content, nil
}

// Stat returns the inode of a single file.
func (s *Store) Stat(name string) (Inode, error) {
	f, exists := s.files[name]
	if !exists {
		return Inode{}, storeerrors.NewNotFoundError(name)
	}
	return f.inode(name), nil
}

// ListInodes returns a snapshot of the file table in creation order.
func (s *Store) ListInodes() []Inode {
	inodes := make([]Inode, 0, len(s.order))
	for _, name := range s.order {
		inodes = append(inodes, s.files[name].inode(name))
	}
	return inodes
}

// FreeBlockMap returns a copy of the availability vector (true = free).
func (s *Store) FreeBlockMap() []bool {
	out := make([]bool, len(s.free))
	copy(out, s.free)
	return out
}

// Usage returns current pool occupancy.
func (s *Store) Usage() Usage {
	freeCount := 0
	for _, isFree := range s.free {
		if isFree {
			freeCount++
		}
	}
	return Usage{
		TotalBlocks: len(s.free),
		FreeBlocks:  freeCount,
		UsedBlocks:  len(s.free) - freeCount,
		Files:       len(s.files),
		BlockSize:   s.blockSize,
	}
}

func (f *file) inode(name string) Inode {
	blocks := make([]int, len(f.dataBlocks))
	copy(blocks, f.dataBlocks)
	return Inode{
		Name:       name,
		SizeKB:     f.sizeKB,
		IndexBlock: f.indexBlock,
		DataBlocks: blocks,
	}
}

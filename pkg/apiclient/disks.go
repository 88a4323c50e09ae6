package apiclient

import "time"

// Disk describes a simulated disk.
type Disk struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	TotalBlocks int       `json:"total_blocks" yaml:"total_blocks"`
	FreeBlocks  int       `json:"free_blocks" yaml:"free_blocks"`
	UsedBlocks  int       `json:"used_blocks" yaml:"used_blocks"`
	Files       int       `json:"files" yaml:"files"`
	BlockSize   int       `json:"block_size" yaml:"block_size"`
}

// CreateDiskRequest is the request to create a disk. Zero geometry fields
// select the server defaults.
type CreateDiskRequest struct {
	Name        string `json:"name"`
	TotalBlocks int    `json:"total_blocks,omitempty"`
	BlockSize   int    `json:"block_size,omitempty"`
}

// BlockMap is the free-block availability vector of one disk.
type BlockMap struct {
	Free      []bool `json:"free" yaml:"free"`
	Total     int    `json:"total" yaml:"total"`
	FreeCount int    `json:"free_count" yaml:"free_count"`
}

// ListDisks returns all disks sorted by name.
func (c *Client) ListDisks() ([]Disk, error) {
	return listResources[Disk](c, "/api/v1/disks")
}

// GetDisk returns one disk with its usage counters.
func (c *Client) GetDisk(name string) (*Disk, error) {
	return getResource[Disk](c, resourcePath("/api/v1/disks/%s", name))
}

// CreateDisk creates a disk.
func (c *Client) CreateDisk(req *CreateDiskRequest) (*Disk, error) {
	return createResource[Disk](c, "/api/v1/disks", req)
}

// DeleteDisk removes a disk and every file on it.
func (c *Client) DeleteDisk(name string) error {
	return deleteResource(c, resourcePath("/api/v1/disks/%s", name))
}

// GetBlockMap returns the free-block map of a disk.
func (c *Client) GetBlockMap(diskName string) (*BlockMap, error) {
	return getResource[BlockMap](c, resourcePath("/api/v1/disks/%s/blocks", diskName))
}

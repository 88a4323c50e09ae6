package apiclient

import "github.com/marmos91/indexfs/pkg/alloc"

// Inode is one row of a disk's file table.
type Inode = alloc.Inode

// CreateFileRequest is the request to create a file.
type CreateFileRequest struct {
	Name   string `json:"name"`
	SizeKB int    `json:"size_kb"`
}

type contentBody struct {
	Content string `json:"content"`
}

// ListInodes returns the file table of a disk in creation order.
func (c *Client) ListInodes(diskName string) ([]Inode, error) {
	return listResources[Inode](c, resourcePath("/api/v1/disks/%s/files", diskName))
}

// GetInode returns the inode of one file.
func (c *Client) GetInode(diskName, name string) (*Inode, error) {
	return getResource[Inode](c, resourcePath("/api/v1/disks/%s/files/%s", diskName, name))
}

// CreateFile creates a file with a declared size and returns its inode.
func (c *Client) CreateFile(diskName, name string, sizeKB int) (*Inode, error) {
	return createResource[Inode](c, resourcePath("/api/v1/disks/%s/files", diskName),
		&CreateFileRequest{Name: name, SizeKB: sizeKB})
}

// DeleteFile removes a file and frees its blocks.
func (c *Client) DeleteFile(diskName, name string) error {
	return deleteResource(c, resourcePath("/api/v1/disks/%s/files/%s", diskName, name))
}

// WriteFile replaces the content of a file.
func (c *Client) WriteFile(diskName, name, content string) error {
	return c.put(resourcePath("/api/v1/disks/%s/files/%s/content", diskName, name),
		&contentBody{Content: content}, nil)
}

// ReadFile returns the content of a file.
func (c *Client) ReadFile(diskName, name string) (string, error) {
	body, err := getResource[contentBody](c, resourcePath("/api/v1/disks/%s/files/%s/content", diskName, name))
	if err != nil {
		return "", err
	}
	return body.Content, nil
}

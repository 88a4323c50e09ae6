package apiclient

import (
	"fmt"
	"net/url"
)

// getResource performs a GET and decodes the response data into a T.
//
// Example:
//
//	ino, err := getResource[Inode](c, filePath("main", "a.txt"))
func getResource[T any](c *Client, path string) (*T, error) {
	var result T
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// listResources performs a GET and decodes the response data into a []T.
func listResources[T any](c *Client, path string) ([]T, error) {
	var results []T
	if err := c.get(path, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// createResource performs a POST with body and decodes the response data into a T.
func createResource[T any](c *Client, path string, body any) (*T, error) {
	var result T
	if err := c.post(path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func deleteResource(c *Client, path string) error {
	return c.delete(path, nil)
}

// resourcePath formats a path template, escaping every argument as a
// single path segment.
//
// Example:
//
//	resourcePath("/api/v1/disks/%s/files/%s", "main", "a b") // .../main/files/a%20b
func resourcePath(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(format, escaped...)
}

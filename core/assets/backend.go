package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"

	"folder-ingest/core/storage"
)

// DirBackend reads folders and files from the local filesystem.
type DirBackend struct{}

// List returns the regular files directly inside folderPath. Subdirectories
// are not descended into; the folder listing is flat, like the rest of the
// ingestion model.
func (DirBackend) List(folderPath string) ([]string, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(folderPath, entry.Name()))
	}
	return paths, nil
}

// Read returns the file's bytes.
func (DirBackend) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ObjectBackend reads folders and files from an object store bucket.
// Folder paths map to key prefixes; member files are the objects under the
// prefix.
type ObjectBackend struct {
	client storage.Client
	bucket string
}

// NewObjectBackend creates a backend over the given bucket. It verifies the
// bucket is reachable before returning.
func NewObjectBackend(ctx context.Context, client storage.Client, bucket string) (*ObjectBackend, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}
	return &ObjectBackend{client: client, bucket: bucket}, nil
}

// List returns the object keys under the folder prefix.
func (b *ObjectBackend) List(folderPath string) ([]string, error) {
	prefix := folderPath
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}

	var paths []string
	for object := range b.client.ListObjects(context.Background(), b.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, object.Err)
		}
		// Skip the prefix marker object some stores report.
		if object.Key == prefix {
			continue
		}
		paths = append(paths, object.Key)
	}
	return paths, nil
}

// Read downloads an object's bytes.
func (b *ObjectBackend) Read(path string) ([]byte, error) {
	reader, err := b.client.GetObject(context.Background(), b.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", path, err)
	}
	return data, nil
}

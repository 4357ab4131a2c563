package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"model-generator/core/storage"
)

// Root is a single template root.
type Root interface {
	// URI identifies the root, e.g. "file:///srv/templates" or "s3://bucket/prefix".
	URI() string
	// Open returns the content at location. A missing location yields an error
	// matching fs.ErrNotExist.
	Open(ctx context.Context, location string) ([]byte, error)
	// Locate returns the canonical location of an existing resource.
	Locate(ctx context.Context, location string) (string, error)
}

// cleanLocation normalizes a template location to an fs.FS style path.
func cleanLocation(location string) (string, error) {
	name := path.Clean("/" + strings.ReplaceAll(location, `\`, "/"))[1:]
	if name == "" || !fs.ValidPath(name) {
		return "", &fs.PathError{Op: "open", Path: location, Err: fs.ErrInvalid}
	}
	return name, nil
}

// FSRoot serves templates from an fs.FS.
type FSRoot struct {
	uri  string
	fsys fs.FS
}

// NewFSRoot returns a root backed by fsys and identified by uri.
func NewFSRoot(uri string, fsys fs.FS) *FSRoot {
	return &FSRoot{uri: strings.TrimSuffix(uri, "/"), fsys: fsys}
}

// NewDirRoot returns a root serving the local directory dir.
func NewDirRoot(dir string) (*FSRoot, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("template root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template root %s is not a directory", dir)
	}
	uri := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	return NewFSRoot(uri, os.DirFS(abs)), nil
}

func (r *FSRoot) URI() string {
	return r.uri
}

func (r *FSRoot) Open(_ context.Context, location string) ([]byte, error) {
	name, err := cleanLocation(location)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(r.fsys, name)
}

func (r *FSRoot) Locate(_ context.Context, location string) (string, error) {
	name, err := cleanLocation(location)
	if err != nil {
		return "", err
	}
	if _, err := fs.Stat(r.fsys, name); err != nil {
		return "", err
	}
	return r.uri + "/" + name, nil
}

// StorageRoot serves templates stored under a prefix of an object storage bucket.
type StorageRoot struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageRoot returns a root serving bucket/prefix through client.
func NewStorageRoot(client storage.Client, bucket, prefix string) *StorageRoot {
	return &StorageRoot{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (r *StorageRoot) URI() string {
	if r.prefix == "" {
		return "s3://" + r.bucket
	}
	return "s3://" + r.bucket + "/" + r.prefix
}

func (r *StorageRoot) key(location string) (string, error) {
	name, err := cleanLocation(location)
	if err != nil {
		return "", err
	}
	if r.prefix == "" {
		return name, nil
	}
	return r.prefix + "/" + name, nil
}

func (r *StorageRoot) Open(ctx context.Context, location string) ([]byte, error) {
	key, err := r.key(location)
	if err != nil {
		return nil, err
	}

	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, r.translate(key, err)
	}
	defer obj.Close()

	// minio reports a missing object on the first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, r.translate(key, err)
	}
	return data, nil
}

func (r *StorageRoot) Locate(ctx context.Context, location string) (string, error) {
	key, err := r.key(location)
	if err != nil {
		return "", err
	}
	if _, err := r.client.StatObject(ctx, r.bucket, key, minio.StatObjectOptions{}); err != nil {
		return "", r.translate(key, err)
	}
	return "s3://" + r.bucket + "/" + key, nil
}

// Check verifies that the bucket exists.
func (r *StorageRoot) Check(ctx context.Context) error {
	ok, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", r.bucket, err)
	}
	if !ok {
		return fmt.Errorf("template bucket %s does not exist", r.bucket)
	}
	return nil
}

func (r *StorageRoot) translate(key string, err error) error {
	if storage.IsNotFound(err) {
		return &fs.PathError{Op: "open", Path: r.bucket + "/" + key, Err: fs.ErrNotExist}
	}
	return fmt.Errorf("failed to read %s/%s: %w", r.bucket, key, err)
}

// ParseRoot builds a Root from a URI. "s3://bucket/prefix" needs a storage client;
// "file://" URIs and plain paths are served from the local disk.
func ParseRoot(uri string, client storage.Client) (Root, error) {
	return parseRoot(uri, client, "")
}

func parseRoot(uri string, client storage.Client, defaultBucket string) (Root, error) {
	if !strings.Contains(uri, "://") {
		return NewDirRoot(uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid template root %q: %w", uri, err)
	}

	switch u.Scheme {
	case "file":
		return NewDirRoot(filepath.FromSlash(u.Path))
	case "s3":
		if client == nil {
			return nil, errors.New("template root " + uri + " requires storage to be configured")
		}
		bucket := u.Host
		if bucket == "" {
			bucket = defaultBucket
		}
		if bucket == "" {
			return nil, fmt.Errorf("template root %q has no bucket", uri)
		}
		return NewStorageRoot(client, bucket, u.Path), nil
	default:
		return nil, fmt.Errorf("unsupported template root scheme %q", u.Scheme)
	}
}

// ParseRoots builds roots from URIs, keeping their order. Storage URIs without a
// bucket ("s3:///prefix") use defaultBucket.
func ParseRoots(uris []string, client storage.Client, defaultBucket string) ([]Root, error) {
	roots := make([]Root, 0, len(uris))
	for _, uri := range uris {
		root, err := parseRoot(uri, client, defaultBucket)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

package rewards

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
)

const gcsScheme = "gs://"

// OpenExtract opens an extract for reading. name is a local path, "-" for
// the standard input, or a gs://bucket/object URI. Names ending in ".gz" are
// decompressed on the fly.
func OpenExtract(ctx context.Context, name string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch {
	case name == "-":
		rc = io.NopCloser(os.Stdin)
	case strings.HasPrefix(name, gcsScheme):
		rc, err = openGCSObject(ctx, name)
	default:
		rc, err = os.Open(name)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("cannot decompress %q: %w", name, err)
		}
		return &readClosers{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	}
	return rc, nil
}

// ExtractName returns the base name of an extract without its extensions,
// e.g. "gs://bucket/weekly/01-rewards.csv.gz" -> "01-rewards".
func ExtractName(name string) string {
	base := path.Base(strings.TrimPrefix(name, gcsScheme))
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, path.Ext(base))
}

// splitGCSURI splits gs://bucket/object into its bucket and object names.
func splitGCSURI(uri string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(uri, gcsScheme)
	bucket, object, found := strings.Cut(trimmed, "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid GCS URI (want gs://bucket/object): %s", uri)
	}
	return bucket, object, nil
}

// openGCSObject streams an object from Google Cloud Storage. The storage
// client lives as long as the returned reader.
func openGCSObject(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("open GCS object reader %s/%s: %w", bucket, object, err)
	}
	return &readClosers{Reader: r, closers: []io.Closer{r, client}}, nil
}

// readClosers reads from Reader and closes every closer in order.
type readClosers struct {
	io.Reader
	closers []io.Closer
}

func (r *readClosers) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

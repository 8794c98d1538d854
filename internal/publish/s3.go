// Package publish uploads compiled manifests and partials to S3 so a
// CDN or edge renderer can serve them.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arbor-dev/arbor/internal/errors"
)

// ObjectPutter is the subset of the S3 client the publisher uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads a build output directory to an S3 bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

// Options configures a Publisher.
type Options struct {
	// Bucket is the target S3 bucket. Required.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// Region overrides the SDK's resolved region.
	Region string

	// Logger receives upload logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Publisher using the default AWS credential chain.
func New(ctx context.Context, opts Options) (*Publisher, error) {
	if opts.Bucket == "" {
		return nil, errors.New("P160").WithDetail("publish.bucket is not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New("P160").Wrap(err)
	}

	return NewWithClient(s3.NewFromConfig(awsCfg), opts), nil
}

// NewWithClient creates a Publisher with an existing client.
func NewWithClient(client ObjectPutter, opts Options) *Publisher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client: client,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		logger: logger,
	}
}

// PublishDir uploads every file under dir. Keys are the slash-separated
// paths relative to dir, with the configured prefix prepended. Files
// are uploaded in sorted order so repeated runs behave identically.
func (p *Publisher) PublishDir(ctx context.Context, dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, errors.New("P161").WithPath(dir).Wrap(err)
	}
	sort.Strings(paths)

	uploaded := 0
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return uploaded, errors.New("P161").WithPath(path).Wrap(err)
		}
		key := p.key(rel)

		if err := p.publishFile(ctx, path, key); err != nil {
			return uploaded, err
		}
		uploaded++

		p.logger.Info("uploaded",
			slog.String("key", key),
			slog.String("bucket", p.bucket))
	}

	return uploaded, nil
}

// PublishFile uploads a single file under the given key.
func (p *Publisher) PublishFile(ctx context.Context, path, key string) error {
	return p.publishFile(ctx, path, p.key(key))
}

func (p *Publisher) publishFile(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.New("P161").WithPath(path).Wrap(err)
	}
	defer f.Close()

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(path)),
	})
	if err != nil {
		return errors.New("P161").
			WithPath(path).
			WithDetail(fmt.Sprintf("uploading to s3://%s/%s", p.bucket, key)).
			Wrap(err)
	}
	return nil
}

func (p *Publisher) key(rel string) string {
	key := filepath.ToSlash(rel)
	if p.prefix != "" {
		key = strings.TrimSuffix(p.prefix, "/") + "/" + key
	}
	return key
}

// contentType resolves a Content-Type from the file extension.
func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

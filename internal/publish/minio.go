package publish

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/config"
)

// objectStore is the subset of *minio.Client used for publishing.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOPublisher stores datasets under <owner>/<name>/ in an S3 compatible
// bucket.
type MinIOPublisher struct {
	store  objectStore
	bucket string
	logger *zap.Logger
}

func NewMinIOPublisher(cfg config.MinIO, logger *zap.Logger) (*MinIOPublisher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Publish(err, "invalid minio endpoint %s", cfg.Endpoint)
	}
	return &MinIOPublisher{store: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Publish checks the bucket, which also verifies the credentials, then puts
// every artifact. The data file goes first and the card last, so a card
// only appears once its data is in place.
func (p *MinIOPublisher) Publish(ctx context.Context, repo model.RemoteDatasetRepo, artifacts []Artifact) error {
	exists, err := p.store.BucketExists(ctx, p.bucket)
	if err != nil {
		return errors.Publish(err, "cannot access bucket %s", p.bucket)
	}
	if !exists {
		if err := p.store.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Publish(err, "cannot create bucket %s", p.bucket)
		}
		p.logger.Info("created bucket", zap.String("bucket", p.bucket))
	}

	for _, a := range orderForUpload(artifacts) {
		key := path.Join(repo.Owner, repo.Name, a.Path)
		opts := minio.PutObjectOptions{ContentType: contentTypeFor(a.Path)}
		if a.SHA256 != "" {
			opts.UserMetadata = map[string]string{"sha256": a.SHA256}
		}
		info, err := p.store.PutObject(ctx, p.bucket, key, bytes.NewReader(a.Content), int64(len(a.Content)), opts)
		if err != nil {
			return errors.Publish(err, "upload of %s failed", key)
		}
		p.logger.Info("uploaded object", zap.String("bucket", p.bucket), zap.String("key", key), zap.Int64("size", info.Size))
	}
	return nil
}

func orderForUpload(artifacts []Artifact) []Artifact {
	ordered := make([]Artifact, 0, len(artifacts))
	var cards []Artifact
	for _, a := range artifacts {
		if a.Path == CardPath {
			cards = append(cards, a)
			continue
		}
		ordered = append(ordered, a)
	}
	return append(ordered, cards...)
}

func contentTypeFor(p string) string {
	switch path.Ext(p) {
	case ".md":
		return "text/markdown"
	case ".parquet":
		return "application/vnd.apache.parquet"
	default:
		return "application/octet-stream"
	}
}

package publish

import (
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
)

type mockStore struct {
	mock.Mock
	uploaded map[string]string
	metadata map[string]map[string]string
	order    []string
}

func (m *mockStore) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(bucketName).Error(0)
}

func (m *mockStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, _ := io.ReadAll(reader)
	if m.uploaded == nil {
		m.uploaded = map[string]string{}
	}
	m.uploaded[objectName] = string(data)
	if m.metadata == nil {
		m.metadata = map[string]map[string]string{}
	}
	m.metadata[objectName] = opts.UserMetadata
	m.order = append(m.order, objectName)
	args := m.Called(bucketName, objectName, opts.ContentType)
	return minio.UploadInfo{Key: objectName, Size: objectSize}, args.Error(0)
}

var repo = model.RemoteDatasetRepo{Owner: "alice", Name: "talks"}

func TestMinIOPublisher_Publish(t *testing.T) {
	store := &mockStore{}
	store.On("BucketExists", "v2t-datasets").Return(true, nil)
	store.On("PutObject", "v2t-datasets", "alice/talks/README.md", "text/markdown").Return(nil)
	store.On("PutObject", "v2t-datasets", "alice/talks/"+DataPath, "application/vnd.apache.parquet").Return(nil)

	artifacts := []Artifact{
		{Path: CardPath, Content: []byte("# card")},
		{Path: DataPath, Content: []byte("PAR1 data"), SHA256: "abc123"},
	}
	p := &MinIOPublisher{store: store, bucket: "v2t-datasets", logger: zap.NewNop()}
	require.NoError(t, p.Publish(context.Background(), repo, artifacts))

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "MakeBucket", mock.Anything)
	assert.Equal(t, []string{"alice/talks/" + DataPath, "alice/talks/README.md"}, store.order, "card is uploaded last")
	assert.Equal(t, "PAR1 data", store.uploaded["alice/talks/"+DataPath])
	assert.Equal(t, map[string]string{"sha256": "abc123"}, store.metadata["alice/talks/"+DataPath])
	assert.Nil(t, store.metadata["alice/talks/README.md"])
}

func TestMinIOPublisher_CreatesMissingBucket(t *testing.T) {
	store := &mockStore{}
	store.On("BucketExists", "b").Return(false, nil)
	store.On("MakeBucket", "b").Return(nil)
	store.On("PutObject", "b", mock.Anything, mock.Anything).Return(nil)

	p := &MinIOPublisher{store: store, bucket: "b", logger: zap.NewNop()}
	require.NoError(t, p.Publish(context.Background(), repo, testArtifacts))
	store.AssertCalled(t, "MakeBucket", "b")
}

func TestMinIOPublisher_FailedDataUploadLeavesNoCard(t *testing.T) {
	store := &mockStore{}
	store.On("BucketExists", "b").Return(true, nil)
	store.On("PutObject", "b", "alice/talks/"+DataPath, mock.Anything).Return(stderrors.New("connection reset"))

	p := &MinIOPublisher{store: store, bucket: "b", logger: zap.NewNop()}
	err := p.Publish(context.Background(), repo, testArtifacts)
	assert.ErrorIs(t, err, errors.ErrPublish)
	assert.Equal(t, []string{"alice/talks/" + DataPath}, store.order)
	store.AssertNotCalled(t, "PutObject", "b", "alice/talks/README.md", mock.Anything)
}

func TestOrderForUpload(t *testing.T) {
	ordered := orderForUpload([]Artifact{{Path: CardPath}, {Path: "data/extra.parquet"}, {Path: DataPath}})
	assert.Equal(t, []string{"data/extra.parquet", DataPath, CardPath}, []string{ordered[0].Path, ordered[1].Path, ordered[2].Path})
}

func TestMinIOPublisher_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *mockStore)
	}{
		{
			name: "access denied",
			setup: func(s *mockStore) {
				s.On("BucketExists", "b").Return(false, stderrors.New("Access Denied"))
			},
		},
		{
			name: "upload fails",
			setup: func(s *mockStore) {
				s.On("BucketExists", "b").Return(true, nil)
				s.On("PutObject", "b", mock.Anything, mock.Anything).Return(stderrors.New("connection reset"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			tt.setup(store)
			p := &MinIOPublisher{store: store, bucket: "b", logger: zap.NewNop()}
			err := p.Publish(context.Background(), repo, testArtifacts)
			assert.ErrorIs(t, err, errors.ErrPublish)
		})
	}
}

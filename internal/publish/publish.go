// Package publish uploads an exported dataset to a remote dataset repository.
package publish

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/util/files"
	"youtube-whisper/internal/config"
)

// DataPath is where the dataset file lives inside the repository.
const DataPath = "data/train-00000-of-00001.parquet"

// CardPath is the dataset card file name.
const CardPath = "README.md"

// Artifact is one file to place in the repository. SHA256 is the hex digest
// of Content when known.
type Artifact struct {
	Path    string
	Content []byte
	SHA256  string
}

// Publisher pushes artifacts to a dataset repository in one go. Failed pushes
// are not resumed; callers retry from scratch.
type Publisher interface {
	Publish(ctx context.Context, repo model.RemoteDatasetRepo, artifacts []Artifact) error
}

// ParseRepoID splits "owner/name".
func ParseRepoID(id string) (model.RemoteDatasetRepo, error) {
	parts := strings.Split(strings.TrimSpace(id), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return model.RemoteDatasetRepo{}, errors.Wrapf(errors.ErrInvalidConfig, "repository id must look like owner/name, got %q", id)
	}
	return model.RemoteDatasetRepo{Owner: parts[0], Name: parts[1]}, nil
}

// DatasetArtifacts loads the exported parquet file and pairs it with card.
func DatasetArtifacts(parquetPath, card string) ([]Artifact, error) {
	data, err := os.ReadFile(parquetPath)
	if err != nil {
		return nil, errors.NotFound("dataset file", parquetPath)
	}
	sum, err := files.CalculateFileHash(parquetPath)
	if err != nil {
		return nil, err
	}
	return []Artifact{
		{Path: DataPath, Content: data, SHA256: sum},
		{Path: CardPath, Content: []byte(card)},
	}, nil
}

// New returns the publisher for target after checking its credentials.
func New(cfg *config.Config, target string, logger *zap.Logger) (Publisher, error) {
	if err := config.RequirePublish(cfg, target); err != nil {
		return nil, err
	}

	switch target {
	case "huggingface":
		return NewHubPublisher(cfg.HuggingFace.Endpoint, cfg.HuggingFace.Token, cfg.Dataset.Private, logger), nil
	case "minio":
		p, err := NewMinIOPublisher(cfg.MinIO, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown publish target: %s", target)
	}
}

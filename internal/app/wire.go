//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/pipeline"
	"youtube-whisper/internal/config"
	"youtube-whisper/internal/dataset"
)

func InitializePipeline(cfg *config.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	wire.Build(StageSet, provideRunDAO, provideOptions, pipeline.New)
	return &pipeline.Pipeline{}, nil
}

func InitializeDatasetBuilder(cfg *config.Config, logger *zap.Logger) (*dataset.Builder, error) {
	wire.Build(provideTranscriber, provideLineWidth, dataset.NewBuilder)
	return &dataset.Builder{}, nil
}

package config

const (
	DefaultDownloadsDir   = "downloads"
	DefaultChunksDir      = "chunks"
	DefaultTranscriptFile = "transcript.txt"
	DefaultParquetFile    = "youtube_dataset.parquet"
	DefaultHistoryDB      = "data/history.db"

	DefaultFFmpegPath    = "ffmpeg"
	DefaultTargetFormat  = "mp3"
	DefaultAudioQuality  = "2"
	DefaultLineWidth     = 80
	DefaultProvider      = "whisper_cpp"
	DefaultModel         = "small"
	DefaultLanguage      = "auto"
	DefaultWhisperBinary = "whisper-cli"
	DefaultTimeoutSec    = 600

	DefaultHubEndpoint  = "https://huggingface.co"
	DefaultTarget       = "huggingface"
	DefaultSamplingRate = 16000

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "v2t-datasets"
)

// Default returns a configuration with every field set to its default value.
func Default() *Config {
	return &Config{
		Paths: Paths{
			DownloadsDir:   DefaultDownloadsDir,
			ChunksDir:      DefaultChunksDir,
			TranscriptsDir: DefaultChunksDir,
			TranscriptFile: DefaultTranscriptFile,
			ParquetFile:    DefaultParquetFile,
			HistoryDB:      DefaultHistoryDB,
		},
		Download: Download{
			TimeoutSec: DefaultTimeoutSec,
			Progress:   true,
		},
		Transcoder: Transcoder{
			FFmpegPath:   DefaultFFmpegPath,
			TargetFormat: DefaultTargetFormat,
			Quality:      DefaultAudioQuality,
		},
		Transcriber: Transcriber{
			Provider:         DefaultProvider,
			Model:            DefaultModel,
			Language:         DefaultLanguage,
			LineWidth:        DefaultLineWidth,
			WhisperCppBinary: DefaultWhisperBinary,
			TimeoutSec:       DefaultTimeoutSec,
		},
		Dataset: Dataset{
			Target:       DefaultTarget,
			SamplingRate: DefaultSamplingRate,
		},
		HuggingFace: HuggingFace{
			Endpoint: DefaultHubEndpoint,
		},
		MinIO: MinIO{
			Endpoint: DefaultMinIOEndpoint,
			Bucket:   DefaultMinIOBucket,
		},
	}
}

package dataset

import (
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/samber/lo"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
)

// Audio mirrors the hub's Audio feature: raw file bytes plus the file name.
type Audio struct {
	Bytes []byte `parquet:"bytes"`
	Path  string `parquet:"path"`
}

// Row is one parquet row of the exported dataset.
type Row struct {
	Audio      Audio  `parquet:"audio"`
	Transcript string `parquet:"transcript"`
}

// WriteParquet embeds each record's audio and writes all rows to path.
func WriteParquet(records []model.DatasetRecord, path string) error {
	if len(records) == 0 {
		return errors.New("dataset is empty: no chunk has a transcript")
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		data, err := os.ReadFile(rec.AudioPath)
		if err != nil {
			return errors.NotFound("audio chunk", rec.AudioPath)
		}
		rows = append(rows, Row{
			Audio:      Audio{Bytes: data, Path: filepath.Base(rec.AudioPath)},
			Transcript: rec.Transcript,
		})
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return errors.Wrapf(err, "failed to write parquet file %s", path)
	}
	return nil
}

// ReadParquet loads the rows of a dataset file written by WriteParquet.
func ReadParquet(path string) ([]Row, error) {
	return parquet.ReadFile[Row](path)
}

// Transcripts returns the transcript column of rows.
func Transcripts(rows []Row) []string {
	return lo.Map(rows, func(r Row, _ int) string { return r.Transcript })
}

package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"youtube-whisper/internal/app/model"
)

var headers = []string{
	"ID", "Created At", "URL", "Title", "Audio File", "Audio Duration",
	"Model", "Language", "Transcript", "Error Message",
}

// ToExcel writes runs to a single-sheet workbook at outputFilePath.
func ToExcel(runs []model.Run, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().Value = h
	}

	for _, r := range runs {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = r.URL
		row.AddCell().Value = r.Title
		row.AddCell().Value = r.AudioPath
		row.AddCell().Value = fmt.Sprintf("%.2f", r.AudioDuration)
		row.AddCell().Value = r.Model
		row.AddCell().Value = r.Language
		row.AddCell().Value = r.Transcript
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}

package dataset

import (
	"fmt"
	"strings"

	"youtube-whisper/internal/app/model"
)

// Card renders the README.md dataset card uploaded next to the data file.
func Card(repo model.RemoteDatasetRepo, dataPath string, records, samplingRate int) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("configs:\n")
	b.WriteString("- config_name: default\n")
	b.WriteString("  data_files:\n")
	b.WriteString("  - split: train\n")
	fmt.Fprintf(&b, "    path: %s\n", dataPath)
	b.WriteString("dataset_info:\n")
	b.WriteString("  features:\n")
	b.WriteString("  - name: audio\n")
	b.WriteString("    dtype:\n")
	b.WriteString("      audio:\n")
	fmt.Fprintf(&b, "        sampling_rate: %d\n", samplingRate)
	b.WriteString("  - name: transcript\n")
	b.WriteString("    dtype: string\n")
	b.WriteString("  splits:\n")
	b.WriteString("  - name: train\n")
	fmt.Fprintf(&b, "    num_examples: %d\n", records)
	b.WriteString("task_categories:\n")
	b.WriteString("- automatic-speech-recognition\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", repo.Name)
	fmt.Fprintf(&b, "Audio chunks paired with their transcripts, %d examples.\n", records)
	return b.String()
}

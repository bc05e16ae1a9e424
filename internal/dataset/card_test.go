package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"youtube-whisper/internal/app/model"
)

func TestCard(t *testing.T) {
	card := Card(model.RemoteDatasetRepo{Owner: "someone", Name: "yt-test"}, "data/train-00000-of-00001.parquet", 3, 16000)

	assert.True(t, strings.HasPrefix(card, "---\n"))
	assert.Contains(t, card, "# yt-test\n")
	assert.Contains(t, card, "3 examples")

	parts := strings.SplitN(card, "---\n", 3)
	assert.Len(t, parts, 3)

	var front struct {
		Configs []struct {
			ConfigName string `yaml:"config_name"`
			DataFiles  []struct {
				Split string `yaml:"split"`
				Path  string `yaml:"path"`
			} `yaml:"data_files"`
		} `yaml:"configs"`
		DatasetInfo struct {
			Splits []struct {
				Name        string `yaml:"name"`
				NumExamples int    `yaml:"num_examples"`
			} `yaml:"splits"`
		} `yaml:"dataset_info"`
	}
	assert.NoError(t, yaml.Unmarshal([]byte(parts[1]), &front))

	if assert.Len(t, front.Configs, 1) && assert.Len(t, front.Configs[0].DataFiles, 1) {
		assert.Equal(t, "default", front.Configs[0].ConfigName)
		assert.Equal(t, "train", front.Configs[0].DataFiles[0].Split)
		assert.Equal(t, "data/train-00000-of-00001.parquet", front.Configs[0].DataFiles[0].Path)
	}
	if assert.Len(t, front.DatasetInfo.Splits, 1) {
		assert.Equal(t, 3, front.DatasetInfo.Splits[0].NumExamples)
	}
}

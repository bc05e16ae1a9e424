package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"youtube-whisper/cmd/v2t/cmd/cli"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/repository/sqlite"
	"youtube-whisper/internal/config"
)

func TestExportCommand(t *testing.T) {
	chdir(t, t.TempDir())
	cli.Global = cli.Flags{}

	db, err := sqlite.NewSQLiteDB(config.DefaultHistoryDB)
	require.NoError(t, err)
	require.NoError(t, db.Insert(model.Run{ID: "r1", URL: "https://youtu.be/a", Transcript: "hello world", CreatedAt: time.Now()}))
	require.NoError(t, db.Close())

	var out bytes.Buffer
	Cmd.SetArgs([]string{"-o", "history.xlsx"})
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.Execute())
	assert.Contains(t, out.String(), "1 runs written to history.xlsx")

	file, err := xlsx.OpenFile("history.xlsx")
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 2)
}

package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachinth/koda/internal/logger"
	"github.com/sachinth/koda/theme"
)

type fakeRunner struct {
	output []byte
	err    error
}

func (r *fakeRunner) Run(_ context.Context) ([]byte, error) {
	return r.output, r.err
}

func testLogger() *logger.StyledLogger {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logger.NewStyledLogger(discard, theme.Default())
}

func TestReader_List(t *testing.T) {
	t.Run("returns records for well-formed output", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(
			"NAME            ID     SIZE    MODIFIED\n" +
				"llama2:7b       aaa    3.8 GB  5 weeks ago\n" +
				"codellama:13b   bbb    7.4 GB  2 weeks ago\n",
		)}
		reader := NewReader(runner, time.Second, testLogger())

		records := reader.List(context.Background())
		require.Len(t, records, 2)
		assert.Equal(t, "llama2", records[0].Name)
		assert.Equal(t, "codellama:13b", records[1].FullName)
	})

	t.Run("falls back to placeholder when command fails", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 1")}
		reader := NewReader(runner, time.Second, testLogger())

		records := reader.List(context.Background())
		require.Len(t, records, 1)
		assert.Equal(t, PlaceholderRecord(), records[0])
	})

	t.Run("falls back to placeholder when nothing parses", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("NAME ID SIZE MODIFIED\n")}
		reader := NewReader(runner, time.Second, testLogger())

		records := reader.List(context.Background())
		require.Len(t, records, 1)
		assert.Equal(t, "llama2", records[0].Name)
		assert.Equal(t, "llama2:7b", records[0].FullName)
		assert.Equal(t, "Unknown", records[0].Size)
		assert.Equal(t, "Unknown", records[0].Modified)
	})

	t.Run("never returns an empty slice", func(t *testing.T) {
		runner := &fakeRunner{output: nil}
		reader := NewReader(runner, time.Second, testLogger())

		records := reader.List(context.Background())
		assert.NotEmpty(t, records)
	})
}

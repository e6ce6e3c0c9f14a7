package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	t.Run("captures entries", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Info("validations loaded", slog.Int("rows", 10))
		logger.Error("render failed", slog.String("chart", "days"))

		require.Len(t, logs.Entries(), 2)
		assert.True(t, logs.ContainsMessage("validations loaded"))
		assert.True(t, logs.ContainsAttr("rows", int64(10)))
		assert.True(t, logs.ContainsAttr("chart", "days"))
		assert.False(t, logs.ContainsAttr("chart", "stops"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")

		assert.Len(t, logs.EntriesAt(slog.LevelInfo), 1)
		assert.Empty(t, logs.EntriesAt(slog.LevelError))
		AssertLogContains(t, logs, slog.LevelWarn, "warn")
	})

	t.Run("keeps component attributes", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		charts := logger.With(slog.String("component", "chart_handler"))
		charts.Info("chart rendered", slog.String("chart", "stops"))
		logger.Info("unscoped")

		entries := logs.ForComponent("chart_handler")
		require.Len(t, entries, 1)
		assert.Equal(t, "stops", entries[0].Attrs["chart"])
		assert.Len(t, logs.Entries(), 2)
	})

	t.Run("prefixes grouped keys", func(t *testing.T) {
		logger, logs := NewTestLogger(t)

		logger.WithGroup("export").Info("export written",
			slog.String("format", "csv"),
			slog.Group("file", slog.Int("bytes", 42)))

		assert.True(t, logs.ContainsAttr("export.format", "csv"))
		assert.True(t, logs.ContainsAttr("export.file.bytes", int64(42)))
	})
}

func TestBuildValidationsCSV(t *testing.T) {
	csv := BuildValidationsCSV([]Row{{"05/01/2024", "1", "Gare A", "Metro", 100, "Janvier"}})
	assert.Equal(t, "jour;code_stif_arret;libelle_arret;categorie_titre;nb_vald;Mois\n05/01/2024;1;Gare A;Metro;100;Janvier\n", csv)
}

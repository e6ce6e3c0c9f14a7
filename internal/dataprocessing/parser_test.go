package dataprocessing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ratpdash/internal/errors"
	"ratpdash/internal/shared/testutil"
)

func TestParseFile(t *testing.T) {
	path := testutil.WriteValidationsCSV(t, testutil.SampleRows())

	table, err := ParseFile(path, DefaultParseOptions())
	require.NoError(t, err)

	assert.Equal(t, 10, table.Len())
	assert.Equal(t, testutil.ValidationsHeader, table.Columns())
	assert.Equal(t, []string{"Février", "Janvier"}, table.Months())

	rows := table.Rows()
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"2024-01-05", "71410", "Gare du Nord", "Navigo", "500", "Janvier"}, rows[0])
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile("does/not/exist.csv", DefaultParseOptions())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestParseReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing columns",
			content: "jour;libelle_arret;nb_vald\n05/01/2024;Gare A;100\n",
			wantMsg: "missing required columns: Mois, categorie_titre",
		},
		{
			name:    "unparseable date",
			content: "jour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;Janvier;Gare A;Metro;100\n2024/31/31;Janvier;Gare B;Metro;5\n",
			wantErr: ErrInvalidDate,
			wantMsg: "line 3",
		},
		{
			name:    "non numeric count",
			content: "jour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;Janvier;Gare A;Metro;beaucoup\n",
			wantErr: ErrInvalidCount,
			wantMsg: "line 2",
		},
		{
			name:    "NaN stop",
			content: "jour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;Janvier;Gare A;Metro;100\n05/01/2024;Janvier;NaN;Metro;5\n",
			wantErr: ErrInvalidLabel,
			wantMsg: "line 3",
		},
		{
			name:    "NaN month",
			content: "jour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;NaN;Gare A;Metro;100\n",
			wantErr: ErrInvalidLabel,
		},
		{
			name:    "negative count",
			content: "jour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;Janvier;Gare A;Metro;-4\n",
			wantErr: ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.content), DefaultParseOptions())
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseReader_ByteOrderMark(t *testing.T) {
	content := "\ufeffjour;Mois;libelle_arret;categorie_titre;nb_vald\n05/01/2024;Janvier;Gare A;Metro;100\n06/01/2024;Janvier;Gare A;Metro;7\n"

	table, err := ParseReader(strings.NewReader(content), DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, "jour", table.Columns()[0])
	assert.Equal(t, int64(107), Summarize(table).TotalValidations)
}

func TestParseReader_KeepsMissingMarkersAsText(t *testing.T) {
	table := loadRows(t, []testutil.Row{
		{Day: "05/01/2024", Code: "NaN", Stop: "<nil>", Category: "NA", Count: 100, Month: "Janvier"},
		{Day: "05/01/2024", Code: "NA", Stop: "Gare B", Category: "Metro", Count: 50, Month: "NA"},
	})

	assert.Equal(t, []string{"Janvier", "NA"}, table.Months())
	assert.Equal(t, []string{"Metro", "NA"}, table.Categories())
	assert.Equal(t, []string{"2024-01-05", "NaN", "<nil>", "NA", "100", "Janvier"}, table.Rows()[0])
	assert.Equal(t, []string{"2024-01-05", "NA", "Gare B", "Metro", "50", "NA"}, table.Rows()[1])

	filtered, err := FilterByMonth(table, "NA")
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Len())
}

func TestParseReader_CustomDelimiter(t *testing.T) {
	content := "jour,Mois,libelle_arret,categorie_titre,nb_vald\n05/01/2024,Janvier,Gare A,Metro,100\n06/01/2024,Janvier,Gare B,Metro,50\n"

	table, err := ParseReader(strings.NewReader(content), ParseOptions{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"05/01/2024", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"12/03/2024", time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{"5/1/2024", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"05-01-2024", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"05.01.2024", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"05/01/24", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{" 31/01/2024 ", time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	for _, bad := range []string{"", "01/31/2024", "hier", "2024-13-01"} {
		_, err := ParseDay(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"XLSX", FormatXLSX, false},
		{" csv ", FormatCSV, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, "application/octet-stream", Format("x").ContentType())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "validations-Janvier.csv", FileName("Janvier", FormatCSV))
	assert.Equal(t, "validations-Février.xlsx", FileName("Février", FormatXLSX))
	assert.Equal(t, "validations-mois-1.csv", FileName("mois 1", FormatCSV))
	assert.Equal(t, "validations.csv", FileName("", FormatCSV))
	assert.Equal(t, "validations.csv", FileName("../..", FormatCSV))
}

package dataprocessing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "ratpdash/internal/errors"
	"ratpdash/pkg/contracts/domain"
)

// DayLayout is the normalized representation of the day column
const DayLayout = "2006-01-02"

// dayFirstLayouts are tried in order; ambiguous values resolve day-first.
var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseOptions configures how the validations export is read
type ParseOptions struct {
	Delimiter rune
}

// DefaultParseOptions returns the options matching the validations export
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Delimiter: ';'}
}

// ParseFile reads the validations export at filePath into a Table.
func ParseFile(filePath string, opts ParseOptions) (*Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewAppError(apperrors.ErrTypeNotFound,
				fmt.Sprintf("validations file %s not found", filePath), err)
		}
		return nil, apperrors.NewStorageError("failed to open validations file", err).
			WithContext("path", filePath)
	}
	defer f.Close()

	table, err := ParseReader(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	slog.Info("Validations file loaded",
		slog.String("file_path", filePath),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns())),
		slog.Int("months", len(table.Months())))

	return table, nil
}

// ParseReader reads a validations export from r.
// The day column is rewritten to ISO dates and the count column typed as integer.
func ParseReader(r io.Reader, opts ParseOptions) (*Table, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultParseOptions().Delimiter
	}

	df := dataframe.ReadCSV(skipBOM(r),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// "NA" is a legitimate label; keep every value as written
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", df.Err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}

	if err := checkLabels(df); err != nil {
		return nil, apperrors.NewParsingError("failed to read label columns", err)
	}

	days, err := normalizeDays(df.Col(domain.ColumnDay).Records())
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse day column", err)
	}

	counts, err := parseCounts(df.Col(domain.ColumnCount).Records())
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse count column", err)
	}

	df = df.Mutate(series.New(days, series.String, domain.ColumnDay))
	df = df.Mutate(series.New(counts, series.Int, domain.ColumnCount))
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to normalize columns", df.Err)
	}

	return newTable(df), nil
}

// ParseDay parses a day value, resolving ambiguous values day-first.
func ParseDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

func normalizeDays(values []string) ([]string, error) {
	days := make([]string, len(values))
	for i, v := range values {
		t, err := ParseDay(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		days[i] = t.Format(DayLayout)
	}
	return days, nil
}

func parseCounts(values []string) ([]int, error) {
	counts := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("line %d: %w: %q", i+2, ErrInvalidCount, v)
		}
		counts[i] = n
	}
	return counts, nil
}

// labelColumns are grouped on and must hold a value on every row
var labelColumns = []string{domain.ColumnMonth, domain.ColumnStop, domain.ColumnCategory}

// checkLabels rejects label values gota stores as missing. String series treat
// the literal "NaN" as missing whatever the load options say.
func checkLabels(df dataframe.DataFrame) error {
	for _, column := range labelColumns {
		for i, missing := range df.Col(column).IsNaN() {
			if missing {
				return fmt.Errorf("line %d: %w: %s is %q", i+2, ErrInvalidLabel, column, "NaN")
			}
		}
	}
	return nil
}

func missingColumns(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var missing []string
	for _, required := range domain.RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// skipBOM drops a leading UTF-8 byte order mark so the first header stays intact.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}

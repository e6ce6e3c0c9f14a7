package exporter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Format is a download format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats other than csv and xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat validates a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// FileName builds the attachment name for an export of month
func FileName(month string, f Format) string {
	name := "validations"
	if m := strings.Trim(unsafeFileChars.ReplaceAllString(month, "-"), "-"); m != "" {
		name += "-" + m
	}
	return name + "." + string(f)
}

package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// ValidationsHeader is the header of the fixture export, in file order
var ValidationsHeader = []string{"jour", "code_stif_arret", "libelle_arret", "categorie_titre", "nb_vald", "Mois"}

// Row is one line of a validations export fixture
type Row struct {
	Day      string // day-first, as found in the export
	Code     string
	Stop     string
	Category string
	Count    int
	Month    string
}

// Fields returns the row in ValidationsHeader order
func (r Row) Fields() []string {
	return []string{r.Day, r.Code, r.Stop, r.Category, strconv.Itoa(r.Count), r.Month}
}

// SampleRows returns a small two-month export with four stops and three categories.
// Totals: 2 550 validations; Gare du Nord 1 100, Châtelet 900, Bastille 400, Nation 150.
func SampleRows() []Row {
	return []Row{
		{"05/01/2024", "71410", "Gare du Nord", "Navigo", 500, "Janvier"},
		{"05/01/2024", "71410", "Gare du Nord", "Imagine R", 100, "Janvier"},
		{"05/01/2024", "73794", "Châtelet", "Navigo", 300, "Janvier"},
		{"06/01/2024", "73794", "Châtelet", "Amethyste", 100, "Janvier"},
		{"06/01/2024", "71517", "Bastille", "Navigo", 200, "Janvier"},
		{"02/02/2024", "71410", "Gare du Nord", "Navigo", 400, "Février"},
		{"02/02/2024", "71410", "Gare du Nord", "Imagine R", 100, "Février"},
		{"02/02/2024", "73794", "Châtelet", "Navigo", 500, "Février"},
		{"12/02/2024", "71517", "Bastille", "Amethyste", 200, "Février"},
		{"12/02/2024", "71673", "Nation", "Navigo", 150, "Février"},
	}
}

// BuildValidationsCSV renders rows as a semicolon-delimited export with header
func BuildValidationsCSV(rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(ValidationsHeader, ";"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r.Fields(), ";"))
		b.WriteString("\n")
	}
	return b.String()
}

// WriteValidationsCSV writes rows to a temp file and returns its path
func WriteValidationsCSV(t testing.TB, rows []Row) string {
	t.Helper()
	return WriteRawCSV(t, BuildValidationsCSV(rows))
}

// WriteRawCSV writes content verbatim to a temp file and returns its path
func WriteRawCSV(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "validations.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

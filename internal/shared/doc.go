// Package shared holds helpers used by more than one package of the dashboard.
//
// The testutil subpackage provides:
//
//   - CSV fixtures of the validations export, written to a test temp dir
//   - a buffered slog handler to assert on log output
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    path := testutil.WriteValidationsCSV(t, testutil.SampleRows())
//	    table, err := dataprocessing.ParseFile(path, dataprocessing.DefaultParseOptions())
//	    require.NoError(t, err)
//	}
//
// Production code must not import testutil.
package shared

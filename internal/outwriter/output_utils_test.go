package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{
			name:      "precision 2",
			precision: 2,
			value:     33.3333,
			expected:  "33.33",
		},
		{
			name:      "precision 0",
			precision: 0,
			value:     66.6667,
			expected:  "67",
		},
		{
			name:      "precision 1",
			precision: 1,
			value:     94.96,
			expected:  "95.0",
		},
		{
			name:      "negative delta",
			precision: 2,
			value:     -12.346,
			expected:  "-12.35",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "kpi object",
			data: map[string]any{
				"executed_pct": 32,
				"health":       "green",
			},
			expected: `{
  "executed_pct": 32,
  "health": "green"
}
`,
		},
		{
			name: "platforms",
			data: []string{"App", "BOSS", "Web"},
			expected: `[
  "App",
  "BOSS",
  "Web"
]
`,
		},
		{
			name:     "string",
			data:     "active",
			expected: `"active"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeJSON(&buf, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	// Test with a value that can't be marshaled to JSON
	invalidData := make(chan int)
	var buf bytes.Buffer
	err := writeJSON(&buf, invalidData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "series rows",
			header: []string{"index", "date", "executed_pct"},
			rows: [][]string{
				{"1", "2025-01-06", "10"},
				{"2", "2025-01-07", "20"},
			},
			expected: "index,date,executed_pct\n1,2025-01-06,10\n2,2025-01-07,20\n",
		},
		{
			name:     "empty rows",
			header:   []string{"col1", "col2"},
			rows:     [][]string{},
			expected: "col1,col2\n",
		},
		{
			name:   "titles with commas",
			header: []string{"id", "title"},
			rows: [][]string{
				{"7", "Login fails, then retries"},
			},
			expected: "id,title\n7,\"Login fails, then retries\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteCSVWithHeaderError(t *testing.T) {
	// Test CSV writer error propagation
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		// Simulate an error in row writing
		return assert.AnError
	})
	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileStdout(t *testing.T) {
	// Test writing to stdout (empty string means stdout)
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte("test"))
		return err
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFileActualFile(t *testing.T) {
	// Create a temporary file for testing
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.txt")

	// Test writing to an actual file
	testContent := "test content"
	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte(testContent))
		return err
	}, "Test message")

	require.NoError(t, err)

	// Verify file content
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(content))
}

func TestWriteWithFileError(t *testing.T) {
	// Test error propagation from writer function
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.txt")

	err := writeWithFile(tmpFile, func(io.Writer) error {
		return assert.AnError
	}, "Test message")

	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	// Test with an invalid file path (should fail on file open)
	err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error {
		return nil
	}, "Test message")

	require.Error(t, err)
}

func TestWriteJSONIntegration(t *testing.T) {
	// Test full integration: write JSON to file using helpers
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.json")

	testData := map[string]any{
		"platform":         "Web",
		"blocker_critical": 2,
	}

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeJSON(w, testData)
	}, "Wrote JSON")

	require.NoError(t, err)

	// Read and verify
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	assert.Equal(t, "Web", result["platform"])
	assert.Equal(t, float64(2), result["blocker_critical"]) // JSON numbers are float64
}

func TestWriteCSVIntegration(t *testing.T) {
	// Test full integration: write CSV to file using helpers
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.csv")

	header := []string{"date", "open_defects"}
	rows := [][]string{
		{"2025-01-06", "5"},
		{"2025-01-07", "7"},
	}

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range rows {
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")

	require.NoError(t, err)

	// Read and verify
	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, 3, len(lines)) // header + 2 rows
	assert.Equal(t, "date,open_defects", lines[0])
	assert.Equal(t, "2025-01-06,5", lines[1])
	assert.Equal(t, "2025-01-07,7", lines[2])
}

func TestFmtNumber(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "-", fmtNumber(schema.Number{}, fmtFloat))
	assert.Equal(t, "0.0", fmtNumber(schema.Num(0), fmtFloat))
	assert.Equal(t, "42.5", fmtNumber(schema.Num(42.5), fmtFloat))
}

func TestFmtDelta(t *testing.T) {
	assert.Equal(t, "+2pp", fmtDelta(2))
	assert.Equal(t, "+0pp", fmtDelta(0))
	assert.Equal(t, "-7pp", fmtDelta(-7))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Login fails", 20, "Login fails"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "Payment page crashes on submit", 12, "Payment p..."},
		{"multibyte", "Überweisung schlägt fehl", 8, "Überw..."},
		{"tiny width", "abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateText(tt.input, tt.width))
		})
	}
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "-", orDash("   "))
	assert.Equal(t, "Web", orDash("Web"))
}

func TestDispatch(t *testing.T) {
	data := map[string]int{"value": 1}
	tests := []struct {
		output   schema.OutputMode
		expected string
	}{
		{schema.JSONOut, "{\n  \"value\": 1\n}\n"},
		{schema.CSVOut, "key,value\nvalue,1\n"},
		{schema.TextOut, "value=1\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			outFile := filepath.Join(t.TempDir(), "out")
			cfg := &contract.Config{Output: tt.output, OutputFile: outFile}
			err := dispatch(cfg, data,
				func(w *csv.Writer) error { return w.Write([]string{"value", "1"}) },
				[]string{"key", "value"},
				func(w io.Writer) error {
					_, err := io.WriteString(w, "value=1\n")
					return err
				})
			require.NoError(t, err)

			content, err := os.ReadFile(outFile)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))
		})
	}
}

package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVParser parses comma or tab separated scorecards.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data and returns a Scorecard
func (p *CSVParser) Parse(data []byte) (*Scorecard, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return parseRows(records)
}

// preprocessCSVData strips a UTF-8 BOM, normalises line endings and picks
// the delimiter by counting commas and tabs in the first lines.
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ',', fmt.Errorf("empty CSV data")
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	lines := strings.SplitN(cleaned, "\n", 6)
	commaCount, tabCount := 0, 0
	for _, line := range lines[:min(len(lines), 5)] {
		commaCount += strings.Count(line, ",")
		tabCount += strings.Count(line, "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter, nil
}

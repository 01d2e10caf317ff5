package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// requiredCSVColumns is the fixed header contract for CSV exports.
var requiredCSVColumns = []string{
	"Name", "MIN", "PTS", "FGM", "FGA", "FG%", "3PM", "3PA", "3P%",
	"FTM", "FTA", "FT%", "OREB", "DREB", "REB", "AST", "TOV", "STL", "BLK", "PF",
}

// plusMinusColumns are the accepted spellings of the optional +/- column.
var plusMinusColumns = []string{"+/-", "Plus/Minus", "PM", "PlusMinus", "PLUS_MINUS"}

// ParseCSV reads a header-bearing CSV box score and combines it with
// previously parsed filename metadata into a canonical game payload.
// Any missing required column or malformed stat cell rejects the whole
// file: a game is imported completely or not at all.
func ParseCSV(path string, meta GameMeta) (*GamePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return parseCSVReader(f, meta)
}

func parseCSVReader(r io.Reader, meta GameMeta) (*GamePayload, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	// Column name -> index map, same shape as a label-indexed stat table.
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	for _, col := range requiredCSVColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", col)
		}
	}

	pmIndex := -1
	for _, col := range plusMinusColumns {
		if idx, ok := colIndex[col]; ok {
			pmIndex = idx
			break
		}
	}

	var players []PlayerRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		cell := func(col string) string {
			return strings.TrimSpace(record[colIndex[col]])
		}

		name := cell("Name")
		if name == "" || name == "Total" {
			continue
		}

		row, err := buildCSVRow(name, cell)
		if err != nil {
			return nil, err
		}

		// The +/- cell is parsed defensively: missing or non-numeric means 0.
		if pmIndex >= 0 && pmIndex < len(record) {
			row.PlusMinus = safeInt(strings.TrimPrefix(strings.TrimSpace(record[pmIndex]), "+"))
		}

		players = append(players, row)
	}

	return &GamePayload{Meta: meta, Source: SourceCSV, Players: players}, nil
}

// buildCSVRow converts one CSV record into a PlayerRow. Stat cells are
// strict here, unlike the PDF path: a malformed number poisons the file.
func buildCSVRow(name string, cell func(string) string) (PlayerRow, error) {
	row := PlayerRow{Name: name, Minutes: cell("MIN")}

	intFields := []struct {
		col string
		dst *int
	}{
		{"PTS", &row.Points},
		{"FGM", &row.FGM}, {"FGA", &row.FGA},
		{"3PM", &row.TPM}, {"3PA", &row.TPA},
		{"FTM", &row.FTM}, {"FTA", &row.FTA},
		{"OREB", &row.OREB}, {"DREB", &row.DREB}, {"REB", &row.REB},
		{"AST", &row.AST}, {"TOV", &row.TOV}, {"STL", &row.STL},
		{"BLK", &row.BLK}, {"PF", &row.PF},
	}
	for _, f := range intFields {
		n, err := strconv.Atoi(cell(f.col))
		if err != nil {
			return PlayerRow{}, fmt.Errorf("csv row %q: bad %s cell %q", name, f.col, cell(f.col))
		}
		*f.dst = n
	}

	pctFields := []struct {
		col string
		dst *float64
	}{
		{"FG%", &row.FGPercent},
		{"3P%", &row.TPPercent},
		{"FT%", &row.FTPercent},
	}
	for _, f := range pctFields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(cell(f.col), "%"), 64)
		if err != nil {
			return PlayerRow{}, fmt.Errorf("csv row %q: bad %s cell %q", name, f.col, cell(f.col))
		}
		*f.dst = v
	}

	return row, nil
}

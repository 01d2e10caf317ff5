package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML reads an HTML box-score export (scoreboard apps emit these as a
// single stats table) and combines it with filename metadata into the
// canonical payload. The table must carry the same header columns as the
// CSV contract; column order is free.
func ParseHTML(path string, meta GameMeta) (*GamePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("html box score has no table")
	}

	// Header cell text -> column index, same contract as the CSV reader.
	colIndex := make(map[string]int)
	table.Find("tr").First().Find("th, td").Each(func(i int, s *goquery.Selection) {
		colIndex[strings.TrimSpace(s.Text())] = i
	})

	for _, col := range requiredCSVColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("html table missing required column %q", col)
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
	var rowErr error

	table.Find("tr").Each(func(ri int, tr *goquery.Selection) {
		if ri == 0 || rowErr != nil {
			return
		}

		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) < len(requiredCSVColumns) {
			return
		}

		cell := func(col string) string { return cells[colIndex[col]] }

		name := cell("Name")
		if name == "" || name == "Total" {
			return
		}

		row, err := buildCSVRow(name, cell)
		if err != nil {
			rowErr = err
			return
		}
		if pmIndex >= 0 && pmIndex < len(cells) {
			row.PlusMinus = safeInt(strings.TrimPrefix(cells[pmIndex], "+"))
		}

		players = append(players, row)
	})

	if rowErr != nil {
		return nil, rowErr
	}

	return &GamePayload{Meta: meta, Source: SourceHTML, Players: players}, nil
}

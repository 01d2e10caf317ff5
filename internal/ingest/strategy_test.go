package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStatLine(t *testing.T) {
	t.Run("multi token name", func(t *testing.T) {
		line := "Jordan van Mills 32:15 20 8 15 53% 2 5 40% 2 2 100% 2 5 7 4 3 1 0 2"

		row, ok := parseStatLine(line)
		if !ok {
			t.Fatal("parseStatLine failed")
		}
		if row.Name != "Jordan van Mills" {
			t.Errorf("name = %q, want %q", row.Name, "Jordan van Mills")
		}
		if row.Minutes != "32:15" || row.Points != 20 {
			t.Errorf("min/pts = %q/%d, want 32:15/20", row.Minutes, row.Points)
		}
		if row.FGPercent != 53.0 || row.TPPercent != 40.0 || row.FTPercent != 100.0 {
			t.Errorf("percentages = %.1f/%.1f/%.1f", row.FGPercent, row.TPPercent, row.FTPercent)
		}
		if row.OREB != 2 || row.DREB != 5 || row.REB != 7 {
			t.Errorf("rebounds = %d/%d/%d, want 2/5/7", row.OREB, row.DREB, row.REB)
		}
		if row.AST != 4 || row.TOV != 3 || row.STL != 1 || row.BLK != 0 || row.PF != 2 {
			t.Errorf("hustle = %d/%d/%d/%d/%d", row.AST, row.TOV, row.STL, row.BLK, row.PF)
		}
		if row.PlusMinus != 0 {
			t.Errorf("plus-minus = %d, want 0 on the text layout", row.PlusMinus)
		}
	})

	t.Run("exactly 19 trailing numeric tokens isolate the name", func(t *testing.T) {
		line := "A B C 10:00 5 2 4 50% 0 0 0% 1 2 50% 0 1 1 0 0 0 0 1"
		row, ok := parseStatLine(line)
		if !ok {
			t.Fatal("parseStatLine failed")
		}
		if row.Name != "A B C" {
			t.Errorf("name = %q, want %q", row.Name, "A B C")
		}
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]string{
			"too few tokens":           "Mills 10 5 2",
			"last token not numeric":   "Mills 10:00 5 2 4 50% 0 0 0% 1 2 50% 0 1 1 0 0 0 0 x",
			"strict counter corrupted": "Mills 10:00 5 2 4 50% 0 0 0% 1 2 50% 0 1 1 0 0 ? 0 1",
			"no name tokens left":      "10:00 5 2 4 50% 0 0 0% 1 2 50% 0 1 1 0 0 0 0 1",
		}
		for name, line := range cases {
			if _, ok := parseStatLine(line); ok {
				t.Errorf("%s: parseStatLine accepted %q", name, line)
			}
		}
	})
}

func TestParseTableRow(t *testing.T) {
	valid := []string{
		"Jordan Mills", "32:15", "20", "8", "15", "53.3%", "2", "5", "40.0%",
		"2", "2", "100.0%", "2", "5", "7", "4", "3", "1", "0", "2",
	}

	t.Run("twenty cells", func(t *testing.T) {
		row, ok := parseTableRow(valid)
		if !ok {
			t.Fatal("parseTableRow failed")
		}
		if row.Name != "Jordan Mills" || row.Points != 20 || row.FGPercent != 53.3 {
			t.Errorf("unexpected row: %+v", row)
		}
	})

	t.Run("twenty-first cell is plus-minus", func(t *testing.T) {
		row, ok := parseTableRow(append(append([]string{}, valid...), "+9"))
		if !ok {
			t.Fatal("parseTableRow failed")
		}
		if row.PlusMinus != 9 {
			t.Errorf("plus-minus = %d, want 9", row.PlusMinus)
		}
	})

	t.Run("empty cells dropped before counting", func(t *testing.T) {
		padded := append([]string{"", " "}, valid...)
		if _, ok := parseTableRow(padded); !ok {
			t.Fatal("parseTableRow failed on padded row")
		}
	})

	t.Run("header and total rows rejected", func(t *testing.T) {
		header := append([]string{}, valid...)
		header[0] = "Name"
		if _, ok := parseTableRow(header); ok {
			t.Error("header row accepted")
		}

		total := append([]string{}, valid...)
		total[0] = "TOTAL"
		if _, ok := parseTableRow(total); ok {
			t.Error("total row accepted")
		}
	})

	t.Run("short row rejected", func(t *testing.T) {
		if _, ok := parseTableRow(valid[:15]); ok {
			t.Error("short row accepted")
		}
	})
}

func TestExtractPlayers(t *testing.T) {
	statLine := "Jordan Mills 32:15 20 8 15 53% 2 5 40% 2 2 100% 2 5 7 4 3 1 0 2"
	tableCells := []string{
		"Jordan Mills", "32:15", "20", "8", "15", "53%", "2", "5", "40%",
		"2", "2", "100%", "2", "5", "7", "4", "3", "1", "0", "2",
	}

	t.Run("table strategy preferred", func(t *testing.T) {
		doc := &pdfDocument{
			lines: []string{statLine},
			cells: [][]string{tableCells},
		}
		players, err := extractPlayers(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(players) != 1 {
			t.Fatalf("got %d players, want 1", len(players))
		}
	})

	t.Run("falls back to text lines", func(t *testing.T) {
		doc := &pdfDocument{
			lines: []string{"14/3 - Tigers", statLine},
			cells: [][]string{{"14/3 - Tigers"}},
		}
		players, err := extractPlayers(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(players) != 1 || players[0].Name != "Jordan Mills" {
			t.Fatalf("unexpected players: %+v", players)
		}
	})

	t.Run("no strategy applicable", func(t *testing.T) {
		doc := &pdfDocument{lines: []string{"nothing useful here"}}
		if _, err := extractPlayers(doc); !errors.Is(err, ErrNoPlayers) {
			t.Errorf("error = %v, want ErrNoPlayers", err)
		}
	})

	t.Run("header lines skipped by text strategy", func(t *testing.T) {
		doc := &pdfDocument{lines: []string{
			"Name MIN PTS FGM FGA FG% 3PM 3PA 3P% FTM FTA FT% OREB DREB REB AST TOV STL BLK PF",
			statLine,
			"Total 200:00 75 30 60 50% 8 20 40% 7 10 70% 10 20 30 15 12 5 2 14",
		}}
		players, err := extractPlayers(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(players) != 1 {
			t.Fatalf("got %d players, want 1", len(players))
		}
		if strings.Contains(players[0].Name, "Total") {
			t.Errorf("total row leaked through: %+v", players[0])
		}
	})
}

package ingest

import (
	"testing"
	"time"
)

func TestParsePDFHeader(t *testing.T) {
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	t.Run("full header", func(t *testing.T) {
		text := "14/3 - Tigers\nwin [78 - 65]\nName MIN PTS\n"

		meta := parsePDFHeader(text, now)
		if meta.Opponent != "Tigers" {
			t.Errorf("opponent = %q, want Tigers", meta.Opponent)
		}
		if meta.Date != "14/03/2025" || meta.SortDate != "2025-03-14" {
			t.Errorf("dates = %q / %q", meta.Date, meta.SortDate)
		}
		if meta.TeamScore != 78 || meta.OpponentScore != 65 {
			t.Errorf("score = %d-%d, want 78-65", meta.TeamScore, meta.OpponentScore)
		}
		if meta.Result != "W" {
			t.Errorf("result = %q, want W", meta.Result)
		}
	})

	t.Run("lose header", func(t *testing.T) {
		text := "2/11 - Hawks\nLOSE [ 55 - 81 ]\n"

		meta := parsePDFHeader(text, now)
		if meta.Result != "L" {
			t.Errorf("result = %q, want L", meta.Result)
		}
		if meta.TeamScore != 55 || meta.OpponentScore != 81 {
			t.Errorf("score = %d-%d, want 55-81", meta.TeamScore, meta.OpponentScore)
		}
	})

	t.Run("missing header keeps defaults", func(t *testing.T) {
		meta := parsePDFHeader("just a stats table, no header here", now)
		if meta.Opponent != "Unknown" {
			t.Errorf("opponent = %q, want Unknown", meta.Opponent)
		}
		if meta.Result != "W" {
			t.Errorf("result = %q, want default W", meta.Result)
		}
		if meta.SortDate != "" {
			t.Errorf("sort date = %q, want empty", meta.SortDate)
		}
		if meta.GameType != "Season" {
			t.Errorf("game type = %q, want Season", meta.GameType)
		}
	})
}

func TestInferYear(t *testing.T) {
	march := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	t.Run("explicit year on page wins", func(t *testing.T) {
		if got := inferYear(11, "season 2023 scoresheet", march); got != 2023 {
			t.Errorf("year = %d, want 2023", got)
		}
	})

	t.Run("current year for recent months", func(t *testing.T) {
		if got := inferYear(3, "no year here", march); got != 2025 {
			t.Errorf("year = %d, want 2025", got)
		}
		// One month ahead is still the current year.
		if got := inferYear(4, "no year here", march); got != 2025 {
			t.Errorf("year = %d, want 2025 for next month", got)
		}
	})

	t.Run("far future month rolls back a year", func(t *testing.T) {
		if got := inferYear(11, "no year here", march); got != 2024 {
			t.Errorf("year = %d, want 2024", got)
		}
	})
}

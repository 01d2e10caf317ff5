package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// Scoresheet header patterns. The header carries "D/M - Opponent" and a
// "win [S1 - S2]" / "lose [S1 - S2]" result line; no year.
var (
	headerDatePattern  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})\s*-\s*(.+)`)
	headerScorePattern = regexp.MustCompile(`(?i)(win|lose)\s*\[\s*(\d+)\s*-\s*(\d+)\s*\]`)
	pageYearPattern    = regexp.MustCompile(`20\d{2}`)
)

// Horizontal gap thresholds, in PDF points. Text extraction yields
// fragments of unpredictable granularity (whole words or single glyphs),
// so adjacency is reconstructed from X positions: gaps wider than
// spaceGapThreshold become a space inside a cell, gaps wider than
// cellGapThreshold start a new table cell.
const (
	spaceGapThreshold = 1.5
	cellGapThreshold  = 6.0
)

// ParsePDF extracts a canonical game payload from a single-page scoresheet
// PDF. Header fields are best effort; player rows come from the first
// applicable strategy in the extraction chain.
func ParsePDF(path string) (*GamePayload, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc, err := extractDocument(reader)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	meta := parsePDFHeader(doc.text, time.Now())

	players, err := extractPlayers(doc)
	if err != nil {
		return nil, err
	}

	return &GamePayload{Meta: meta, Source: SourcePDF, Players: players}, nil
}

// extractPlayers runs the strategy chain; first success wins.
func extractPlayers(doc *pdfDocument) ([]PlayerRow, error) {
	for _, strategy := range pdfStrategies {
		players, err := strategy.Extract(doc)
		if err == nil {
			return players, nil
		}
		if err != ErrStrategyNotApplicable {
			return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
		}
	}
	return nil, ErrNoPlayers
}

// extractDocument reads the first page into the shape the strategies expect:
// positioned fragments grouped into rows, cells within rows split on
// horizontal gaps, and the same rows flattened to plain text lines.
func extractDocument(reader *pdf.Reader) (*pdfDocument, error) {
	if reader.NumPage() < 1 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("pdf first page is empty")
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("read page text: %w", err)
	}

	doc := &pdfDocument{}
	var text strings.Builder

	for _, row := range rows {
		var cells []string
		var cell strings.Builder
		var prevEnd float64

		for _, frag := range row.Content {
			s := frag.S
			if strings.TrimSpace(s) == "" {
				continue
			}

			gap := frag.X - prevEnd
			switch {
			case cell.Len() == 0:
				// first fragment of the row
			case gap > cellGapThreshold:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			case gap > spaceGapThreshold:
				cell.WriteByte(' ')
			}
			cell.WriteString(s)
			prevEnd = frag.X + frag.W
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}

		if len(cells) == 0 {
			continue
		}

		line := strings.Join(cells, " ")
		doc.lines = append(doc.lines, line)
		doc.cells = append(doc.cells, cells)
		text.WriteString(line)
		text.WriteByte('\n')
	}

	doc.text = text.String()
	return doc, nil
}

// parsePDFHeader pulls date, opponent, result and score out of the page
// text. Missing pieces keep their defaults; a scoresheet with a broken
// header still imports if its player table parses.
func parsePDFHeader(text string, now time.Time) GameMeta {
	meta := GameMeta{
		Opponent: "Unknown",
		Result:   "W",
		GameType: "Season",
	}

	if m := headerDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := inferYear(month, text, now)

		meta.Date = fmt.Sprintf("%02d/%02d/%04d", day, month, year)
		meta.SortDate = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		meta.Opponent = strings.TrimSpace(m[3])
	}

	if m := headerScorePattern.FindStringSubmatch(text); m != nil {
		meta.TeamScore = safeInt(m[2])
		meta.OpponentScore = safeInt(m[3])
		if strings.EqualFold(m[1], "win") {
			meta.Result = "W"
		} else {
			meta.Result = "L"
		}
	}

	return meta
}

// inferYear guesses the season year for a header date that carries no year.
// An explicit 4-digit year anywhere on the page always wins. Otherwise the
// current year is assumed, rolling back one year when the parsed month is
// more than one month in the future, since a game already played cannot be
// dated ahead of today. Best effort only, not authoritative.
func inferYear(month int, text string, now time.Time) int {
	if m := pageYearPattern.FindString(text); m != "" {
		year, _ := strconv.Atoi(m)
		return year
	}

	year := now.Year()
	if month > int(now.Month())+1 {
		year--
	}
	return year
}

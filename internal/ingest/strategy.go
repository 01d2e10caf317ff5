package ingest

import (
	"strconv"
	"strings"
)

// pdfDocument is everything the strategies need from an opened scoresheet:
// the first page's plain text and, when the layout exposes one, the
// positioned text grouped into table-like rows of cells.
type pdfDocument struct {
	text  string
	lines []string
	cells [][]string
}

// rowStrategy extracts player rows from a scoresheet. A strategy that cannot
// operate on the document returns ErrStrategyNotApplicable and the chain
// moves on; the first strategy to produce rows wins.
type rowStrategy interface {
	Name() string
	Extract(doc *pdfDocument) ([]PlayerRow, error)
}

// pdfStrategies is the ordered extraction chain. Table cells are preferred;
// right-to-left text parsing is the fallback for layouts with no usable
// table. New layouts get a new strategy here, not a flag on an old one.
var pdfStrategies = []rowStrategy{
	tableStrategy{},
	textLineStrategy{},
}

// tableStrategy maps table cells positionally onto the 20 canonical columns.
// A 21st cell, when present, is the plus-minus value.
type tableStrategy struct{}

func (tableStrategy) Name() string { return "table" }

func (tableStrategy) Extract(doc *pdfDocument) ([]PlayerRow, error) {
	if len(doc.cells) == 0 {
		return nil, ErrStrategyNotApplicable
	}

	var players []PlayerRow
	for _, raw := range doc.cells {
		row, ok := parseTableRow(raw)
		if !ok {
			continue
		}
		players = append(players, row)
	}

	if len(players) == 0 {
		return nil, ErrStrategyNotApplicable
	}
	return players, nil
}

// parseTableRow converts one table row. Rows with fewer than 20 non-empty
// cells, the header row and the synthetic Total row are rejected.
func parseTableRow(raw []string) (PlayerRow, bool) {
	cells := raw[:0:0]
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}

	if len(cells) < 20 {
		return PlayerRow{}, false
	}

	first := strings.ToLower(cells[0])
	if first == "name" || first == "total" {
		return PlayerRow{}, false
	}

	row := PlayerRow{
		Name:      cells[0],
		Minutes:   cells[1],
		Points:    safeInt(cells[2]),
		FGM:       safeInt(cells[3]),
		FGA:       safeInt(cells[4]),
		FGPercent: safePct(cells[5]),
		TPM:       safeInt(cells[6]),
		TPA:       safeInt(cells[7]),
		TPPercent: safePct(cells[8]),
		FTM:       safeInt(cells[9]),
		FTA:       safeInt(cells[10]),
		FTPercent: safePct(cells[11]),
		OREB:      safeInt(cells[12]),
		DREB:      safeInt(cells[13]),
		REB:       safeInt(cells[14]),
		AST:       safeInt(cells[15]),
		TOV:       safeInt(cells[16]),
		STL:       safeInt(cells[17]),
		BLK:       safeInt(cells[18]),
		PF:        safeInt(cells[19]),
	}
	if len(cells) > 20 {
		row.PlusMinus = safeInt(strings.TrimPrefix(cells[20], "+"))
	}

	return row, true
}

// textLineStrategy parses whitespace-delimited scoresheet lines from the
// right: the last 19 tokens are the numeric columns, everything left of
// them is the player name. Inherently fragile (a name whose last token is
// a pure integer cannot be recovered and the line is skipped), so it stays
// behind the strategy seam where it can be replaced wholesale.
//
// Plus-minus is not supported here: legacy scoresheets predate that column
// and a 21-token assumption would break them. It defaults to 0.
type textLineStrategy struct{}

func (textLineStrategy) Name() string { return "text-line" }

func (textLineStrategy) Extract(doc *pdfDocument) ([]PlayerRow, error) {
	var players []PlayerRow
	for _, line := range doc.lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "Name") || strings.HasPrefix(line, "Total") {
			continue
		}

		row, ok := parseStatLine(line)
		if !ok {
			continue
		}
		players = append(players, row)
	}

	if len(players) == 0 {
		return nil, ErrStrategyNotApplicable
	}
	return players, nil
}

// parseStatLine maps the trailing 19 tokens of a line right-to-left:
// PF BLK STL TOV AST REB DREB OREB FT% FTA FTM 3P% 3PA 3PM FG% FGA FGM PTS MIN.
// The eight rightmost counters are strict; a conversion failure there drops
// the whole line rather than fabricating zeros in the middle of a stat row.
func parseStatLine(line string) (PlayerRow, bool) {
	parts := strings.Fields(line)
	if len(parts) < 20 {
		return PlayerRow{}, false
	}
	if !isDigits(parts[len(parts)-1]) {
		return PlayerRow{}, false
	}

	at := func(offset int) string { return parts[len(parts)-offset] }

	strict := make([]int, 8)
	for i := 0; i < 8; i++ {
		n, err := strconv.Atoi(at(i + 1))
		if err != nil {
			return PlayerRow{}, false
		}
		strict[i] = n
	}

	name := strings.TrimSpace(strings.Join(parts[:len(parts)-19], " "))
	if name == "" {
		return PlayerRow{}, false
	}

	return PlayerRow{
		Name:      name,
		Minutes:   at(19),
		Points:    safeInt(at(18)),
		FGM:       safeInt(at(17)),
		FGA:       safeInt(at(16)),
		FGPercent: safePct(at(15)),
		TPM:       safeInt(at(14)),
		TPA:       safeInt(at(13)),
		TPPercent: safePct(at(12)),
		FTM:       safeInt(at(11)),
		FTA:       safeInt(at(10)),
		FTPercent: safePct(at(9)),
		OREB:      strict[7],
		DREB:      strict[6],
		REB:       strict[5],
		AST:       strict[4],
		TOV:       strict[3],
		STL:       strict[2],
		BLK:       strict[1],
		PF:        strict[0],
	}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

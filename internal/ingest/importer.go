package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDuplicateGame signals a payload whose (sort_date, opponent) pair is
// already persisted. The importer counts it as skipped, not failed.
var ErrDuplicateGame = errors.New("ingest: game already imported")

// GameStore is the persistence surface the importer needs. The concrete
// implementation is the games repository; tests use an in-memory fake.
// CreateGame must be atomic: the game header and every player row land
// together or not at all.
type GameStore interface {
	GameExists(ctx context.Context, sortDate, opponent string) (bool, error)
	CreateGame(ctx context.Context, payload *GamePayload) (int, error)
}

// Summary is the per-batch outcome report: one count per file disposition.
type Summary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// Importer walks a directory of box-score files and persists each one as a
// single atomic unit. A failing file is logged and skipped; the batch never
// aborts on a per-file error.
type Importer struct {
	store GameStore
}

// NewImporter creates an importer on top of a game store.
func NewImporter(store GameStore) *Importer {
	return &Importer{store: store}
}

// ImportDir imports every recognized box-score file in dir, in name order,
// and returns the batch summary. Only unreadable directories are fatal.
func (im *Importer) ImportDir(ctx context.Context, dir string) (Summary, error) {
	var summary Summary

	entries, err := os.ReadDir(dir)
	if err != nil {
		return summary, fmt.Errorf("read games dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".pdf", ".html", ".htm":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	log.Printf("[import] Found %d box-score files in %s", len(files), dir)

	for _, path := range files {
		name := filepath.Base(path)

		gameID, err := im.ImportFile(ctx, path)
		switch {
		case errors.Is(err, ErrDuplicateGame):
			log.Printf("[import] --- Skipped %s (already imported)", name)
			summary.Skipped++
		case errors.Is(err, ErrNoMetadata):
			log.Printf("[import] xxx Skipped %s (filename does not match pattern)", name)
			summary.Errors++
		case err != nil:
			log.Printf("[import] xxx Error importing %s: %v", name, err)
			summary.Errors++
		default:
			log.Printf("[import] ✓ Imported %s (game %d)", name, gameID)
			summary.Imported++
		}
	}

	log.Printf("[import] Summary: imported %d | skipped %d | errors %d",
		summary.Imported, summary.Skipped, summary.Errors)

	return summary, nil
}

// ImportFile parses and persists one box-score file. It returns the new
// game ID, or ErrDuplicateGame / ErrNoMetadata / a parse error.
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	payload, err := im.parse(path)
	if err != nil {
		return 0, err
	}

	if len(payload.Players) == 0 {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrNoPlayers)
	}
	if payload.Meta.SortDate == "" {
		return 0, fmt.Errorf("%s: no game date parsed", filepath.Base(path))
	}
	if payload.Meta.Tied() {
		// Ties are kept; amateur friendlies can end level.
		log.Printf("[import] ⚠ %s: tied score %d-%d", filepath.Base(path),
			payload.Meta.TeamScore, payload.Meta.OpponentScore)
	}

	// Best-effort duplicate check. The UNIQUE(sort_date, opponent)
	// constraint underneath makes it safe under concurrent importers.
	exists, err := im.store.GameExists(ctx, payload.Meta.SortDate, payload.Meta.Opponent)
	if err != nil {
		return 0, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return 0, ErrDuplicateGame
	}

	gameID, err := im.store.CreateGame(ctx, payload)
	if err != nil {
		return 0, fmt.Errorf("persist game: %w", err)
	}
	return gameID, nil
}

// parse dispatches on file extension. CSV and HTML exports carry their
// metadata in the filename; PDF scoresheets carry it in the page header.
func (im *Importer) parse(path string) (*GamePayload, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		meta, err := ParseFilename(path)
		if err != nil {
			return nil, err
		}
		return ParseCSV(path, meta)
	case ".html", ".htm":
		meta, err := ParseFilename(path)
		if err != nil {
			return nil, err
		}
		return ParseHTML(path, meta)
	case ".pdf":
		return ParsePDF(path)
	default:
		return nil, fmt.Errorf("unsupported box-score format %q", filepath.Ext(path))
	}
}

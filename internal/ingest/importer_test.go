package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeStore is an in-memory GameStore keyed on (sort_date, opponent).
type fakeStore struct {
	games   map[string]*GamePayload
	nextID  int
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{games: make(map[string]*GamePayload)}
}

func (f *fakeStore) key(sortDate, opponent string) string {
	return sortDate + "|" + opponent
}

func (f *fakeStore) GameExists(ctx context.Context, sortDate, opponent string) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	_, ok := f.games[f.key(sortDate, opponent)]
	return ok, nil
}

func (f *fakeStore) CreateGame(ctx context.Context, payload *GamePayload) (int, error) {
	if f.failErr != nil {
		return 0, f.failErr
	}
	f.nextID++
	f.games[f.key(payload.Meta.SortDate, payload.Meta.Opponent)] = payload
	return f.nextID, nil
}

func writeGameCSV(t *testing.T, dir, name string) string {
	t.Helper()
	data := csvHeader + "\n" +
		"Jordan Mills,32:15,20,8,15,53.3,2,5,40.0,2,2,100.0,2,5,7,4,3,1,0,2\n"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv fixture: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	t.Run("csv import", func(t *testing.T) {
		store := newFakeStore()
		im := NewImporter(store)
		path := writeGameCSV(t, t.TempDir(), "Tigers_78-65_14-03-2025_S.csv")

		gameID, err := im.ImportFile(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gameID != 1 {
			t.Errorf("game id = %d, want 1", gameID)
		}

		stored := store.games["2025-03-14|Tigers"]
		if stored == nil {
			t.Fatal("game not stored under its (sort_date, opponent) key")
		}
		if len(stored.Players) != 1 {
			t.Errorf("stored %d players, want 1", len(stored.Players))
		}
	})

	t.Run("duplicate detected", func(t *testing.T) {
		store := newFakeStore()
		im := NewImporter(store)
		dir := t.TempDir()
		path := writeGameCSV(t, dir, "Tigers_78-65_14-03-2025_S.csv")

		if _, err := im.ImportFile(context.Background(), path); err != nil {
			t.Fatalf("first import: %v", err)
		}
		if _, err := im.ImportFile(context.Background(), path); !errors.Is(err, ErrDuplicateGame) {
			t.Errorf("second import error = %v, want ErrDuplicateGame", err)
		}
		if len(store.games) != 1 {
			t.Errorf("stored %d games, want 1", len(store.games))
		}
	})

	t.Run("bad filename", func(t *testing.T) {
		im := NewImporter(newFakeStore())
		path := writeGameCSV(t, t.TempDir(), "random-notes.csv")

		if _, err := im.ImportFile(context.Background(), path); !errors.Is(err, ErrNoMetadata) {
			t.Errorf("error = %v, want ErrNoMetadata", err)
		}
	})

	t.Run("empty box score rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Tigers_78-65_14-03-2025_S.csv")
		if err := os.WriteFile(path, []byte(csvHeader+"\n"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		im := NewImporter(newFakeStore())
		if _, err := im.ImportFile(context.Background(), path); !errors.Is(err, ErrNoPlayers) {
			t.Errorf("error = %v, want ErrNoPlayers", err)
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := newFakeStore()
		store.failErr = fmt.Errorf("connection refused")
		im := NewImporter(store)
		path := writeGameCSV(t, t.TempDir(), "Tigers_78-65_14-03-2025_S.csv")

		if _, err := im.ImportFile(context.Background(), path); err == nil {
			t.Fatal("expected store error to surface")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Tigers_78-65_14-03-2025_S.txt")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		im := NewImporter(newFakeStore())
		if _, err := im.ImportFile(context.Background(), path); err == nil {
			t.Fatal("expected error for unsupported extension")
		}
	})
}

func TestImportDir(t *testing.T) {
	t.Run("mixed batch", func(t *testing.T) {
		store := newFakeStore()
		im := NewImporter(store)
		dir := t.TempDir()

		writeGameCSV(t, dir, "Tigers_78-65_14-03-2025_S.csv")
		writeGameCSV(t, dir, "Hawks_55-81_02-11-2024_P.csv")
		writeGameCSV(t, dir, "not-a-game.csv")
		// Same (sort_date, opponent) as the first file under another name.
		writeGameCSV(t, dir, "Tigers_78-65_14-03-2025_F.csv")

		summary, err := im.ImportDir(context.Background(), dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Imported != 2 {
			t.Errorf("imported = %d, want 2", summary.Imported)
		}
		if summary.Skipped != 1 {
			t.Errorf("skipped = %d, want 1", summary.Skipped)
		}
		if summary.Errors != 1 {
			t.Errorf("errors = %d, want 1", summary.Errors)
		}
		if len(store.games) != 2 {
			t.Errorf("stored %d games, want 2", len(store.games))
		}
	})

	t.Run("non box-score files ignored", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		summary, err := NewImporter(newFakeStore()).ImportDir(context.Background(), dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary != (Summary{}) {
			t.Errorf("summary = %+v, want all zeros", summary)
		}
	})

	t.Run("missing directory is fatal", func(t *testing.T) {
		_, err := NewImporter(newFakeStore()).ImportDir(context.Background(), "/does/not/exist")
		if err == nil {
			t.Fatal("expected error for missing directory")
		}
	})
}

package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/mkobayashi/webwords/internal/model"
)

func testResult(seed string, startedAt time.Time) *model.CrawlResult {
	return &model.CrawlResult{
		Seed:         seed,
		StartedAt:    startedAt,
		Elapsed:      1500 * time.Millisecond,
		PagesFetched: 4,
		Failures: []model.PageFailure{
			{URL: seed + "gone", Reason: "unexpected status 404"},
		},
		Words: []model.RankedWord{
			{Word: "apple", Count: 9},
			{Word: "mango", Count: 4},
		},
		Emails: []string{"a@example.com"},
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database and schema", func(t *testing.T) {
		t.Parallel()

		db, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })

		runs, err := db.ListRuns(context.Background(), 0)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("ListRuns() = %v, want empty", runs)
		}
	})

	t.Run("missing database without create", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false

		_, err := Open(t.TempDir(), opts)
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("Open() error = %v, want ErrDatabaseNotFound", err)
		}
	})
}

func TestDBSaveAndListRuns(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		seed := fmt.Sprintf("https://site%d.example.com/", i)
		if _, err := db.SaveRun(ctx, testResult(seed, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("len(runs) = %d, want 3", len(runs))
		}
		if runs[0].Seed != "https://site2.example.com/" {
			t.Errorf("runs[0].Seed = %q, want the newest run", runs[0].Seed)
		}
		if !runs[0].StartedAt.After(runs[1].StartedAt) {
			t.Errorf("runs not ordered newest first: %v then %v", runs[0].StartedAt, runs[1].StartedAt)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("len(runs) = %d, want 2", len(runs))
		}
	})

	t.Run("summary fields round-trip", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, 1)
		if err != nil {
			t.Fatalf("ListRuns() error = %v", err)
		}
		run := runs[0]

		if run.PagesFetched != 4 {
			t.Errorf("PagesFetched = %d, want 4", run.PagesFetched)
		}
		if run.PagesFailed != 1 {
			t.Errorf("PagesFailed = %d, want 1", run.PagesFailed)
		}
		if run.UniqueWords != 2 {
			t.Errorf("UniqueWords = %d, want 2", run.UniqueWords)
		}
		if run.EmailCount != 1 {
			t.Errorf("EmailCount = %d, want 1", run.EmailCount)
		}
		if run.Elapsed != 1500*time.Millisecond {
			t.Errorf("Elapsed = %v, want 1.5s", run.Elapsed)
		}
	})
}

func TestDBTopWords(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	runID, err := db.SaveRun(ctx, testResult("https://example.com/", time.Now()))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	words, err := db.TopWords(ctx, runID)
	if err != nil {
		t.Fatalf("TopWords() error = %v", err)
	}

	want := []model.RankedWord{
		{Word: "apple", Count: 9},
		{Word: "mango", Count: 4},
	}
	if !slices.Equal(words, want) {
		t.Errorf("TopWords() = %v, want %v", words, want)
	}

	t.Run("unknown run yields nothing", func(t *testing.T) {
		words, err := db.TopWords(ctx, runID+999)
		if err != nil {
			t.Fatalf("TopWords() error = %v", err)
		}
		if len(words) != 0 {
			t.Errorf("TopWords() = %v, want empty", words)
		}
	})
}

func TestDBSaveRunCapsStoredWords(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	result := testResult("https://example.com/", time.Now())
	result.Words = nil
	for i := 0; i < maxStoredWords+50; i++ {
		result.Words = append(result.Words, model.RankedWord{
			Word:  fmt.Sprintf("word%03d", i),
			Count: maxStoredWords + 50 - i,
		})
	}

	runID, err := db.SaveRun(ctx, result)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	words, err := db.TopWords(ctx, runID)
	if err != nil {
		t.Fatalf("TopWords() error = %v", err)
	}
	if len(words) != maxStoredWords {
		t.Errorf("len(TopWords()) = %d, want %d", len(words), maxStoredWords)
	}
	if words[0].Word != "word000" {
		t.Errorf("TopWords()[0] = %v, want the highest-ranked word", words[0])
	}
}

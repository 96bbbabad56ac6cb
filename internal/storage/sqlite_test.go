package storage

import (
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "zev", Player: "ada", Score: 100, Level: 1, Lines: 1},
		{GameID: "zev", Player: "bob", Score: 50, Level: 1},
		{GameID: "zev", Player: "cy", Score: 200, Level: 2, Lines: 12, Twists: 3, Duration: 90 * time.Second},
		{GameID: "zev_classic", Player: "ada", Score: 500},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("zev", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if top[i].Score != w {
			t.Errorf("run %d: expected score %d, got %d", i, w, top[i].Score)
		}
	}
	if top[0].Player != "cy" || top[0].Lines != 12 || top[0].Twists != 3 {
		t.Errorf("unexpected top run: %+v", top[0])
	}
	if top[0].Duration != 90*time.Second {
		t.Errorf("Expected duration 90s, got %v", top[0].Duration)
	}

	classic, err := store.TopRuns("zev_classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].Score != 500 {
		t.Errorf("Expected one classic run of 500, got %+v", classic)
	}
}

func TestTopRunsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := range 15 {
		if _, err := store.SaveRun(Run{GameID: "zev", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10}, // default
		{100, 15},
	}
	for _, tt := range tests {
		runs, err := store.TopRuns("zev", tt.limit)
		if err != nil {
			t.Fatalf("TopRuns(%d) failed: %v", tt.limit, err)
		}
		if len(runs) != tt.want {
			t.Errorf("TopRuns(%d): expected %d runs, got %d", tt.limit, tt.want, len(runs))
		}
	}
}

func TestHighScoreAndRank(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("zev")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	for _, s := range []int{300, 100, 200} {
		store.SaveRun(Run{GameID: "zev", Score: s})
	}

	high, _ = store.HighScore("zev")
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}

	tests := map[int]int{400: 1, 300: 1, 250: 2, 150: 3, 0: 4}
	for score, want := range tests {
		rank, err := store.Rank("zev", score)
		if err != nil {
			t.Fatalf("Rank() failed: %v", err)
		}
		if rank != want {
			t.Errorf("Rank(%d) = %d, want %d", score, rank, want)
		}
	}
}

func TestTwistStats(t *testing.T) {
	store := openTestStore(t)
	for _, k := range []string{"mirror_world", "gravity_flip", "mirror_world", "multiplier", "mirror_world"} {
		if err := store.RecordTwist("zev", k); err != nil {
			t.Fatalf("RecordTwist() failed: %v", err)
		}
	}
	store.RecordTwist("zev_classic", "gravity_flip")

	stats, err := store.TwistStats("zev")
	if err != nil {
		t.Fatalf("TwistStats() failed: %v", err)
	}
	want := []TwistStat{{"mirror_world", 3}, {"gravity_flip", 1}, {"multiplier", 1}}
	if len(stats) != len(want) {
		t.Fatalf("Expected %d stats, got %+v", len(want), stats)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stat %d = %+v, want %+v", i, stats[i], want[i])
		}
	}
}

func TestGameStatsAndClear(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{GameID: "zev", Score: 100, Lines: 4})
	store.SaveRun(Run{GameID: "zev", Score: 300, Lines: 9})
	store.RecordTwist("zev", "rainbow_mode")

	stats, err := store.GetGameStats("zev")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.MaxLines != 9 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	if err := store.ClearRuns("zev"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	stats, _ = store.GetGameStats("zev")
	if stats.RunsCount != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", stats.RunsCount)
	}
	twists, _ := store.TwistStats("zev")
	if len(twists) != 0 {
		t.Errorf("Expected no twist stats after clear, got %+v", twists)
	}
}

func TestStoresAreIsolated(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)
	a.SaveRun(Run{GameID: "zev", Score: 10})

	runs, err := b.TopRuns("zev", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected separate in-memory databases, got %+v", runs)
	}
}

func TestConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveRun(Run{GameID: "zev", Score: score}); err != nil {
				t.Errorf("SaveRun() failed: %v", err)
			}
			store.RecordTwist("zev", "kaleidoscope")
		}(i)
	}
	wg.Wait()

	runs, _ := store.TopRuns("zev", 100)
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
	stats, _ := store.TwistStats("zev")
	if len(stats) != 1 || stats[0].Count != 20 {
		t.Errorf("Expected 20 kaleidoscope activations, got %+v", stats)
	}
}

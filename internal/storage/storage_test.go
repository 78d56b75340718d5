package storage

import (
	"os"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Storage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStorageAt(dir)
	if err != nil {
		t.Fatalf("NewStorageAt failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestDefaults(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.MaterialSet != MaterialClassic {
			t.Errorf("Expected classic material set, got %v", prefs.MaterialSet)
		}
		if !prefs.SoundEnabled {
			t.Errorf("Expected sound enabled by default")
		}
		if prefs.Flipped {
			t.Errorf("Expected White at the bottom by default")
		}
		if prefs.StartPosition != "" {
			t.Errorf("Expected no stored start position")
		}
	})

	t.Run("MaterialSetNames", func(t *testing.T) {
		names := map[MaterialSet]string{
			MaterialClassic: "Classic",
			MaterialMarble:  "Marble",
			MaterialWood:    "Wood",
			MaterialNeon:    "Neon",
		}
		for m, want := range names {
			if got := m.String(); got != want {
				t.Errorf("%d.String() = %q, want %q", m, got, want)
			}
		}
		if MaterialSet(7).Valid() || MaterialSet(-1).Valid() {
			t.Errorf("out-of-range sets reported valid")
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s, _ := openTemp(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences on empty store: %v", err)
	}
	if prefs.MaterialSet != MaterialClassic || !prefs.SoundEnabled {
		t.Errorf("empty store did not return defaults: %+v", prefs)
	}

	prefs.MaterialSet = MaterialWood
	prefs.Flipped = true
	prefs.SoundEnabled = false
	prefs.StartPosition = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	before := time.Now()
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if got.MaterialSet != MaterialWood || !got.Flipped || got.SoundEnabled || got.StartPosition != prefs.StartPosition {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.LastPlayed.Before(before.Add(-time.Second)) {
		t.Errorf("LastPlayed not refreshed: %v", got.LastPlayed)
	}
}

func TestPreferencesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStorageAt(dir)
	if err != nil {
		t.Fatalf("NewStorageAt failed: %v", err)
	}
	prefs := DefaultPreferences()
	prefs.MaterialSet = MaterialNeon
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = NewStorageAt(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if got.MaterialSet != MaterialNeon {
		t.Errorf("MaterialSet = %v after reopen, want Neon", got.MaterialSet)
	}
}

func TestFirstLaunch(t *testing.T) {
	s, _ := openTemp(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v on a new store", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatalf("MarkFirstLaunchComplete failed: %v", err)
	}
	first, err = s.IsFirstLaunch()
	if err != nil || first {
		t.Errorf("IsFirstLaunch = %v, %v after marking", first, err)
	}
}

func TestRecordSession(t *testing.T) {
	s, _ := openTemp(t)

	sessions := []SessionSummary{
		{Moves: 5, Captures: 1, Blocked: 2, Duration: time.Minute},
		{Moves: 3, Captures: 2, Duration: 30 * time.Second},
	}
	for _, sum := range sessions {
		if err := s.RecordSession(sum); err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	want := Stats{Sessions: 2, Moves: 8, Captures: 3, Blocked: 2, TotalPlayTime: 90 * time.Second}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

func TestDataPaths(t *testing.T) {
	dir := t.TempDir()
	dbDir, err := GetDatabaseDir(dir)
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Setenv("XDG_DATA_HOME", dir)
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}
}

func TestParseMaterialSet(t *testing.T) {
	tests := []struct {
		in      string
		want    MaterialSet
		wantErr bool
	}{
		{"", -1, false},
		{"classic", MaterialClassic, false},
		{"Marble", MaterialMarble, false},
		{"WOOD", MaterialWood, false},
		{"neon", MaterialNeon, false},
		{"glass", -1, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMaterialSet(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMaterialSet(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseMaterialSet(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

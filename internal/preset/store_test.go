package preset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/tempo/internal/preset"
	"github.com/fakeyudi/tempo/internal/timer"
)

func newStore(t *testing.T) preset.Store {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	s, err := preset.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

// Feature: tempo, Property 8: Preset persistence round-trip
func TestPresetRoundTrip(t *testing.T) {
	store := newStore(t)

	rapid.Check(t, func(t *rapid.T) {
		p := preset.Preset{
			Name:    rapid.StringMatching(`[a-z][a-z0-9_-]{0,15}`).Draw(t, "name"),
			Seconds: rapid.IntRange(1, 999*60).Draw(t, "seconds"),
		}
		if err := store.Put(p); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := store.Get(p.Name)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != p {
			t.Errorf("Get = %+v, want %+v", got, p)
		}
	})
}

func TestListEmptyWhenNoFile(t *testing.T) {
	store := newStore(t)
	got, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List = %v, want empty", got)
	}
}

func TestPutReplacesAndSorts(t *testing.T) {
	store := newStore(t)
	for _, p := range []preset.Preset{{Name: "tea", Seconds: 180}, {Name: "egg", Seconds: 420}, {Name: "tea", Seconds: 240}} {
		if err := store.Put(p); err != nil {
			t.Fatalf("Put(%v): %v", p, err)
		}
	}
	got, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []preset.Preset{{Name: "egg", Seconds: 420}, {Name: "tea", Seconds: 240}}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	if err := store.Put(preset.Preset{Name: "tea", Seconds: 180}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Remove("tea"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get("tea"); !errors.Is(err, preset.ErrNotFound) {
		t.Errorf("Get after Remove: got %v, want ErrNotFound", err)
	}
	if err := store.Remove("tea"); !errors.Is(err, preset.ErrNotFound) {
		t.Errorf("second Remove: got %v, want ErrNotFound", err)
	}
}

func TestPutRejectsInvalid(t *testing.T) {
	store := newStore(t)
	cases := []preset.Preset{
		{Name: "", Seconds: 60},
		{Name: "two words", Seconds: 60},
		{Name: "zero", Seconds: 0},
		{Name: "negative", Seconds: -5},
	}
	for _, p := range cases {
		if err := store.Put(p); err == nil {
			t.Errorf("Put(%+v): expected error", p)
		}
	}
	if err := store.Put(preset.Preset{Name: "zero", Seconds: 0}); !errors.Is(err, timer.ErrInvalidConfig) {
		t.Errorf("zero seconds: got %v, want ErrInvalidConfig", err)
	}
}

func TestCorruptFileReportsError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	store, err := preset.NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "tempo", "presets.yaml"), []byte("presets: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.List(); err == nil {
		t.Fatal("expected parse error for corrupt presets file")
	}
}

func TestNewStoreUnwritableDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permission checks are ineffective")
	}
	tmp := t.TempDir()
	if err := os.Chmod(tmp, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(tmp, 0o755) })
	t.Setenv("XDG_DATA_HOME", tmp)

	if _, err := preset.NewStore(); err == nil {
		t.Fatal("expected error creating store in unwritable directory, got nil")
	}
}

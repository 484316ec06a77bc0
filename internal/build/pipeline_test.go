package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"audiocourse/internal/build"
	"audiocourse/internal/logging"
	"audiocourse/internal/sentence"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

type recordingComposer struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
	skip  map[string]string
}

func newRecordingComposer() *recordingComposer {
	return &recordingComposer{calls: map[string]int{}, fail: map[string]error{}, skip: map[string]string{}}
}

func (c *recordingComposer) Compose(_ context.Context, unit build.Unit) error {
	c.mu.Lock()
	c.calls[unit.Sentence.FolderName]++
	failErr := c.fail[unit.Sentence.FolderName]
	skipTrack := c.skip[unit.Sentence.FolderName]
	c.mu.Unlock()

	for _, name := range build.TrackNames {
		if name == skipTrack {
			continue
		}
		if err := os.WriteFile(filepath.Join(unit.Dir, name), []byte(unit.Sentence.Text+"|"+name), 0o644); err != nil {
			return err
		}
	}
	return failErr
}

func (c *recordingComposer) count(folder string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[folder]
}

func qualify(t *testing.T, lines ...string) []sentence.Sentence {
	t.Helper()
	items, err := sentence.Qualify(lines)
	if err != nil {
		t.Fatalf("Qualify: %v", err)
	}
	return items
}

func newPipeline(t *testing.T, courseDir string, composer build.Composer, mutate ...func(*build.Options)) *build.Pipeline {
	t.Helper()
	opts := build.Options{
		CourseDir:   courseDir,
		LockDir:     filepath.Join(t.TempDir(), "locks"),
		Concurrency: 1,
	}
	for _, m := range mutate {
		m(&opts)
	}
	return build.New(opts, settings.New(), composer, logging.NewNop())
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out = append(out, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(out)
	return out
}

func TestRunBuildsThenSkipsOnRerun(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	composer := newRecordingComposer()
	items := qualify(t, "Hola", "", "a", "¿Cómo estás?")

	first, err := newPipeline(t, courseDir, composer).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if c := first.Counts(); c.Built != 2 || c.Failed != 0 {
		t.Fatalf("first run counts %+v", c)
	}
	for _, name := range build.TrackNames {
		if _, err := os.Stat(filepath.Join(courseDir, "hola", name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	before := listTree(t, courseDir)

	second, err := newPipeline(t, courseDir, composer).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if c := second.Counts(); c.Skipped != 2 || c.Built != 0 {
		t.Fatalf("second run counts %+v", c)
	}
	if second.Results[0].Reason != "already exists" {
		t.Fatalf("unexpected reason %q", second.Results[0].Reason)
	}
	after := listTree(t, courseDir)
	if strings.Join(before, "\n") != strings.Join(after, "\n") {
		t.Fatalf("rerun changed course tree:\nbefore %v\nafter  %v", before, after)
	}
	if composer.count("hola") != 1 {
		t.Fatalf("hola composed %d times", composer.count("hola"))
	}
	if first.RunID == "" || first.RunID == second.RunID {
		t.Fatalf("expected distinct run ids, got %q and %q", first.RunID, second.RunID)
	}
}

func TestRunWithoutItemsFailsBeforeTouchingDisk(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	_, err := newPipeline(t, courseDir, newRecordingComposer()).Run(context.Background(), nil)
	if !errors.Is(err, sentence.ErrNoQualifiedItems) || !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected no-qualified-items configuration error, got %v", err)
	}
	if _, statErr := os.Stat(courseDir); !os.IsNotExist(statErr) {
		t.Fatalf("course dir should not exist, stat err=%v", statErr)
	}
}

func TestRunHandlesCollisionsAndDuplicates(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	composer := newRecordingComposer()
	items := qualify(t, "Hola", "hola", "Hola", "Adiós")

	report, err := newPipeline(t, courseDir, composer).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []build.Status{build.StatusBuilt, build.StatusFailed, build.StatusSkipped, build.StatusBuilt}
	for i, status := range want {
		if report.Results[i].Status != status {
			t.Fatalf("result %d status %s, want %s (%+v)", i, report.Results[i].Status, status, report.Results[i])
		}
	}
	if !errors.Is(report.Results[1].Err, build.ErrFolderCollision) {
		t.Fatalf("expected collision error, got %v", report.Results[1].Err)
	}
	if report.Results[2].Reason != "duplicate" {
		t.Fatalf("expected duplicate reason, got %q", report.Results[2].Reason)
	}
	data, err := os.ReadFile(filepath.Join(courseDir, "hola", build.LeadTrack))
	if err != nil {
		t.Fatalf("read lead track: %v", err)
	}
	if !strings.HasPrefix(string(data), "Hola|") {
		t.Fatalf("first line should own the folder, got %q", data)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	composer := newRecordingComposer()
	composer.fail["uno"] = errors.New("provider unavailable")
	composer.skip["dos"] = build.WordTrack
	items := qualify(t, "Uno", "Dos", "Tres", "   ")

	report, err := newPipeline(t, courseDir, composer).Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	c := report.Counts()
	if c.Built != 1 || c.Failed != 3 {
		t.Fatalf("counts %+v", c)
	}
	failed := report.Failed()
	reasons := []string{failed[0].Reason, failed[1].Reason, failed[2].Reason}
	if strings.Join(reasons, ",") != "compose,incomplete unit,empty folder name" {
		t.Fatalf("unexpected reasons %v", reasons)
	}
	if !errors.Is(failed[2].Err, services.ErrValidation) {
		t.Fatalf("empty folder should be a validation error: %v", failed[2].Err)
	}

	entries, err := os.ReadDir(courseDir)
	if err != nil {
		t.Fatalf("read course dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tres" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only tres, got %v", names)
	}
}

func TestConcurrentRunsBuildEachFolderOnce(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	lockDir := filepath.Join(t.TempDir(), "locks")
	composer := newRecordingComposer()
	items := qualify(t, "uno", "dos", "tres", "cuatro", "cinco", "seis")

	var wg sync.WaitGroup
	var built atomic.Int64
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := newPipeline(t, courseDir, composer, func(o *build.Options) {
				o.LockDir = lockDir
				o.Concurrency = 3
			})
			report, err := p.Run(context.Background(), items)
			if err != nil {
				t.Errorf("Run: %v", err)
				return
			}
			built.Add(int64(report.Counts().Built))
		}()
	}
	wg.Wait()

	if built.Load() != int64(len(items)) {
		t.Fatalf("expected %d builds across runs, got %d", len(items), built.Load())
	}
	for _, item := range items {
		if n := composer.count(item.FolderName); n != 1 {
			t.Fatalf("%s composed %d times", item.FolderName, n)
		}
	}
}

func TestCancelledContextReportsUnstartedItems(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	composer := newRecordingComposer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newPipeline(t, courseDir, composer).Run(ctx, qualify(t, "uno", "dos"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, res := range report.Results {
		if res.Status != build.StatusFailed || !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("expected cancelled failure, got %+v", res)
		}
	}
	if composer.count("uno")+composer.count("dos") != 0 {
		t.Fatal("composer should not run after cancellation")
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	lockDir := filepath.Join(t.TempDir(), "locks")
	p := build.New(build.Options{CourseDir: courseDir, LockDir: lockDir, DryRun: true}, settings.New(), nil, nil)

	report, err := p.Run(context.Background(), qualify(t, "Hola", "Adiós"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c := report.Counts(); c.Planned != 2 || !report.DryRun {
		t.Fatalf("unexpected report %+v", c)
	}
	for _, dir := range []string{courseDir, lockDir} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s should not exist, stat err=%v", dir, err)
		}
	}
}

func TestComposerWritesOnlyIntoItsOwnStagingDir(t *testing.T) {
	courseDir := filepath.Join(t.TempDir(), "course")
	var dirs sync.Map
	composer := build.ComposerFunc(func(_ context.Context, unit build.Unit) error {
		if !strings.HasPrefix(filepath.Base(unit.Dir), ".partial-"+unit.Sentence.FolderName+"-") {
			return errors.New("unexpected staging dir " + unit.Dir)
		}
		if _, loaded := dirs.LoadOrStore(unit.Dir, true); loaded {
			return errors.New("staging dir reused")
		}
		for _, name := range build.TrackNames {
			if err := os.WriteFile(filepath.Join(unit.Dir, name), []byte("x"), 0o644); err != nil {
				return err
			}
		}
		return nil
	})
	p := newPipeline(t, courseDir, composer, func(o *build.Options) { o.Concurrency = 4 })
	report, err := p.Run(context.Background(), qualify(t, "uno", "dos", "tres", "cuatro"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c := report.Counts(); c.Built != 4 {
		t.Fatalf("counts %+v, failures %+v", c, report.Failed())
	}
	for _, folder := range []string{"uno", "dos", "tres", "cuatro"} {
		entries, err := os.ReadDir(filepath.Join(courseDir, folder))
		if err != nil || len(entries) != len(build.TrackNames) {
			t.Fatalf("%s has %d entries (err=%v)", folder, len(entries), err)
		}
	}
}

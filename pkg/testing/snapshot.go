package testing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UpdateSnapshotsEnv rewrites golden files instead of comparing when set to 1.
const UpdateSnapshotsEnv = "FLIPCLOCK_UPDATE_SNAPSHOTS"

// TestingT is the part of *testing.T that MatchesFile reports through.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is the canvas size and op list of one painted frame.
type Snapshot struct {
	Size       [2]float64  `json:"size"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// CaptureSnapshot copies the ops of the last pumped frame.
func (t *WidgetTester) CaptureSnapshot() *Snapshot {
	size := t.canvas.Size()
	return &Snapshot{
		Size:       [2]float64{round2(size.Width), round2(size.Height)},
		DisplayOps: append([]DisplayOp(nil), t.last...),
	}
}

// lines renders the snapshot one op per line so golden diffs point at the
// op that changed. encoding/json sorts map keys, which keeps lines stable.
func (s *Snapshot) lines() []string {
	out := []string{fmt.Sprintf("size %gx%g", s.Size[0], s.Size[1])}
	for _, op := range s.DisplayOps {
		b, err := json.Marshal(op)
		if err != nil {
			b = []byte(fmt.Sprintf("%q", err.Error()))
		}
		out = append(out, string(b))
	}
	return out
}

// MatchesFile compares the snapshot with the golden file at path.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()
	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("update snapshot %s: %v", path, err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("snapshot %s does not exist; create it with %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
		return
	}
	if err != nil {
		t.Fatalf("read snapshot %s: %v", path, err)
		return
	}

	want := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if diff := diffLines(want, s.lines()); diff != "" {
		t.Errorf("snapshot %s differs:\n%s\nrerun with %s=1 to accept", path, diff, UpdateSnapshotsEnv)
	}
}

// UpdateFile writes the snapshot to path, creating parent directories.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(s.lines(), "\n")+"\n"), 0o644)
}

// Diff describes how s differs from want, or returns "" when they match.
func (s *Snapshot) Diff(want *Snapshot) string {
	return diffLines(want.lines(), s.lines())
}

func diffLines(want, got []string) string {
	var b strings.Builder
	for i := range max(len(want), len(got)) {
		w, g := lineAt(want, i), lineAt(got, i)
		if w == g {
			continue
		}
		fmt.Fprintf(&b, "@@ line %d\n", i+1)
		if i < len(want) {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		if i < len(got) {
			fmt.Fprintf(&b, "+ %s\n", g)
		}
	}
	return b.String()
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

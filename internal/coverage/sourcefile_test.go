package coverage

import (
	"io/fs"
	"slices"
	"testing"
)

func TestLineCoverage(t *testing.T) {
	t.Parallel()

	f := File{Lines: map[int]int{2: 3, 4: 0}}
	got := LineCoverage(f, 0)
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}
	if got[0] != nil || got[2] != nil {
		t.Fatalf("expected lines 1 and 3 to be irrelevant")
	}
	if got[1] == nil || *got[1] != 3 {
		t.Fatalf("expected line 2 hits 3, got %v", got[1])
	}
	if got[3] == nil || *got[3] != 0 {
		t.Fatalf("expected line 4 hits 0, got %v", got[3])
	}

	if padded := LineCoverage(f, 10); len(padded) != 10 {
		t.Fatalf("expected array padded to 10 lines, got %d", len(padded))
	}
}

func TestBranchCoverage(t *testing.T) {
	t.Parallel()

	f := File{Branches: []Branch{
		{Line: 9, Block: 0, Branch: 1, Hits: 0},
		{Line: 4, Block: 1, Branch: 0, Hits: 2},
		{Line: 4, Block: 0, Branch: 1, Hits: 1},
	}}
	want := []int{4, 0, 1, 1, 4, 1, 0, 2, 9, 0, 1, 0}
	if got := BranchCoverage(f); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if BranchCoverage(File{}) != nil {
		t.Fatalf("expected nil branches for file without branch records")
	}
}

func TestSourceFiles(t *testing.T) {
	t.Parallel()

	report := &Report{Files: []File{
		{Name: "prefix/a.go", Source: "a.go", Lines: map[int]int{1: 1}},
		{Name: "missing.go", Source: "missing.go", Lines: map[int]int{2: 0}},
	}}
	readFile := func(name string) ([]byte, error) {
		if name == "a.go" {
			return []byte("package a\n\nfunc A() {}\n"), nil
		}
		return nil, fs.ErrNotExist
	}

	got := SourceFiles(report, readFile)
	if len(got) != 2 {
		t.Fatalf("expected 2 source files, got %d", len(got))
	}

	if got[0].Name != "prefix/a.go" {
		t.Fatalf("unexpected name %q", got[0].Name)
	}
	if got[0].SourceDigest != "532325fc4cf07928a5684a9440c52d09" {
		t.Fatalf("unexpected digest %q", got[0].SourceDigest)
	}
	if len(got[0].Coverage) != 3 {
		t.Fatalf("expected coverage to span the 3 source lines, got %d", len(got[0].Coverage))
	}
	if got[1].SourceDigest != "" {
		t.Fatalf("expected no digest for unreadable file, got %q", got[1].SourceDigest)
	}
	if len(got[1].Coverage) != 2 {
		t.Fatalf("expected coverage sized by max line, got %d", len(got[1].Coverage))
	}
}

func TestSourceFilesWithoutReader(t *testing.T) {
	t.Parallel()

	got := SourceFiles(&Report{Files: []File{{Name: "a", Lines: map[int]int{1: 1}}}}, nil)
	if got[0].SourceDigest != "" {
		t.Fatalf("expected no digest without reader")
	}
}

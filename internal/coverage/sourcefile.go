package coverage

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"sort"
)

// ReadFileFunc matches the signature of os.ReadFile.
type ReadFileFunc func(name string) ([]byte, error)

// SourceFiles converts every file of r into a Coveralls source file entry.
// When readFile can load a file, either under its reported name or under
// its original report path, the entry carries the MD5 digest of its content
// and its coverage array spans the whole file.
func SourceFiles(r *Report, readFile ReadFileFunc) []SourceFile {
	out := make([]SourceFile, 0, len(r.Files))
	for _, f := range r.Files {
		sf := SourceFile{Name: f.Name}

		lineCount := 0
		if content, ok := readSource(readFile, f.Name, f.Source); ok {
			sum := md5.Sum(content)
			sf.SourceDigest = hex.EncodeToString(sum[:])
			lineCount = countLines(content)
		}

		sf.Coverage = LineCoverage(f, lineCount)
		sf.Branches = BranchCoverage(f)
		out = append(out, sf)
	}
	return out
}

func readSource(readFile ReadFileFunc, names ...string) ([]byte, bool) {
	if readFile == nil {
		return nil, false
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if content, err := readFile(name); err == nil {
			return content, true
		}
	}
	return nil, false
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// LineCoverage returns the hit count of every line of f, indexed by line
// number minus one. Lines without a record are nil. The array is at least
// minLines long.
func LineCoverage(f File, minLines int) []*int {
	size := minLines
	for ln := range f.Lines {
		if ln > size {
			size = ln
		}
	}
	for _, b := range f.Branches {
		if b.Line > size {
			size = b.Line
		}
	}

	out := make([]*int, size)
	for ln, hits := range f.Lines {
		hits := hits
		out[ln-1] = &hits
	}
	return out
}

// BranchCoverage flattens the branches of f into line, block, branch, hits
// quadruples ordered by line, block and branch.
func BranchCoverage(f File) []int {
	if len(f.Branches) == 0 {
		return nil
	}
	branches := append([]Branch(nil), f.Branches...)
	sort.SliceStable(branches, func(i, j int) bool {
		a, b := branches[i], branches[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		return a.Branch < b.Branch
	})

	out := make([]int, 0, len(branches)*4)
	for _, b := range branches {
		out = append(out, b.Line, b.Block, b.Branch, b.Hits)
	}
	return out
}

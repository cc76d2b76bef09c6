package coverage

import (
	"path"
	"path/filepath"
	"strings"
)

// Options are the path options of a job.
type Options struct {
	SourcePrefix   string
	PruneDirs      []string
	PruneAbsolutes bool
}

// Filter returns the files of r that survive the prune options, with
// SourcePrefix joined in front of each remaining name. Pruning always
// matches the names as they appear in the report.
func Filter(r *Report, opts Options) *Report {
	out := &Report{Format: r.Format}
	for _, f := range r.Files {
		if opts.PruneAbsolutes && isAbsolute(f.Source) {
			continue
		}
		if underAny(f.Source, opts.PruneDirs) {
			continue
		}
		if opts.SourcePrefix != "" {
			f.Name = path.Join(filepath.ToSlash(opts.SourcePrefix), filepath.ToSlash(f.Source))
		}
		out.Files = append(out.Files, f)
	}
	return out
}

func isAbsolute(name string) bool {
	return filepath.IsAbs(name) || strings.HasPrefix(name, "/")
}

func underAny(name string, dirs []string) bool {
	name = path.Clean(filepath.ToSlash(name))
	for _, dir := range dirs {
		dir = path.Clean(filepath.ToSlash(dir))
		if dir == "." || dir == "" {
			continue
		}
		if name == dir || strings.HasPrefix(name, strings.TrimSuffix(dir, "/")+"/") {
			return true
		}
	}
	return false
}

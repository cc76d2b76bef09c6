package coverage

// Format identifies the syntax of an input report.
type Format string

// Supported input formats.
const (
	FormatLCOV      Format = "lcov"
	FormatGoProfile Format = "go"
)

// Branch is one branch record: the line, the block and branch numbers
// within that line, and how often the branch was taken.
type Branch struct {
	Line   int
	Block  int
	Branch int
	Hits   int
}

// File holds the coverage of one source file.
type File struct {
	// Name is the path reported to Coveralls.
	Name string
	// Source is the path the report used, before any prefix was applied.
	Source   string
	Lines    map[int]int
	Branches []Branch
}

// Report is a parsed coverage input.
type Report struct {
	Format Format
	Files  []File
}

// SourceFile is one entry of a Coveralls job.
type SourceFile struct {
	Name         string `json:"name"`
	SourceDigest string `json:"source_digest,omitempty"`
	Coverage     []*int `json:"coverage"`
	Branches     []int  `json:"branches,omitempty"`
}

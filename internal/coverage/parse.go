package coverage

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/tools/cover"
)

// Parse reads a whole report from r. Go cover profiles are recognized by
// their leading "mode:" line; everything else is read as LCOV.
func Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report *Report
	switch DetectFormat(data) {
	case FormatGoProfile:
		report, err = parseGoProfile(data)
	default:
		report, err = parseLCOV(data)
	}
	if err != nil {
		return nil, err
	}
	if len(report.Files) == 0 {
		return nil, ErrEmptyReport
	}
	return report, nil
}

// DetectFormat inspects the first non-blank line of data.
func DetectFormat(data []byte) Format {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if bytes.HasPrefix(line, []byte("mode:")) {
			return FormatGoProfile
		}
		return FormatLCOV
	}
	return FormatLCOV
}

func parseGoProfile(data []byte) (*Report, error) {
	profiles, err := cover.ParseProfilesFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	report := &Report{Format: FormatGoProfile}
	for _, p := range profiles {
		f := File{Name: p.FileName, Source: p.FileName, Lines: make(map[int]int)}
		for _, b := range p.Blocks {
			if b.NumStmt == 0 {
				continue
			}
			for line := b.StartLine; line <= b.EndLine; line++ {
				if hits, ok := f.Lines[line]; !ok || b.Count > hits {
					f.Lines[line] = b.Count
				}
			}
		}
		report.Files = append(report.Files, f)
	}
	return report, nil
}

type lcovParser struct {
	report  *Report
	index   map[string]int
	current *File
}

func parseLCOV(data []byte) (*Report, error) {
	p := &lcovParser{
		report: &Report{Format: FormatLCOV},
		index:  make(map[string]int),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedReport, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	p.flush()

	return p.report, nil
}

func (p *lcovParser) parseLine(line string) error {
	if line == "" {
		return nil
	}
	if line == "end_of_record" {
		p.flush()
		return nil
	}

	tag, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}

	switch tag {
	case "SF":
		p.flush()
		p.current = &File{Name: value, Source: value, Lines: make(map[int]int)}
	case "DA":
		if p.current == nil {
			return fmt.Errorf("DA record outside of a source file")
		}
		parts := strings.Split(value, ",")
		if len(parts) < 2 {
			return fmt.Errorf("DA record %q needs a line and a count", value)
		}
		ln, err := parsePositive(parts[0])
		if err != nil {
			return err
		}
		hits, err := parseCount(parts[1])
		if err != nil {
			return fmt.Errorf("invalid hit count %q", parts[1])
		}
		p.current.Lines[ln] += hits
	case "BRDA":
		if p.current == nil {
			return fmt.Errorf("BRDA record outside of a source file")
		}
		parts := strings.Split(value, ",")
		if len(parts) != 4 {
			return fmt.Errorf("BRDA record %q needs four fields", value)
		}
		ln, err := parsePositive(parts[0])
		if err != nil {
			return err
		}
		block, err := parseCount(parts[1])
		if err != nil {
			return fmt.Errorf("invalid block %q", parts[1])
		}
		branch, err := parseCount(parts[2])
		if err != nil {
			return fmt.Errorf("invalid branch %q", parts[2])
		}
		hits := 0
		if parts[3] != "-" {
			if hits, err = parseCount(parts[3]); err != nil {
				return fmt.Errorf("invalid branch count %q", parts[3])
			}
		}
		p.current.Branches = append(p.current.Branches, Branch{Line: ln, Block: block, Branch: branch, Hits: hits})
	}
	return nil
}

// flush stores the current file, merging it into an earlier entry for the
// same path.
func (p *lcovParser) flush() {
	if p.current == nil {
		return
	}
	f := *p.current
	p.current = nil

	i, ok := p.index[f.Name]
	if !ok {
		p.index[f.Name] = len(p.report.Files)
		p.report.Files = append(p.report.Files, f)
		return
	}
	existing := &p.report.Files[i]
	for ln, hits := range f.Lines {
		existing.Lines[ln] += hits
	}
	existing.Branches = append(existing.Branches, f.Branches...)
}

func parseCount(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count %d", v)
	}
	return v, nil
}

func parsePositive(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid line number %q", raw)
	}
	return v, nil
}

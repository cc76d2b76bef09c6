package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/eugenenazirov/coveralls-ci/internal/config"
	"github.com/eugenenazirov/coveralls-ci/internal/coverage"
)

const defaultRemoteName = "origin"

// Job is a finished configuration record plus the coverage it reports.
type Job struct {
	Config      config.Record
	SourceFiles []coverage.SourceFile
	RunAt       time.Time
}

type payload struct {
	RepoToken          string                `json:"repo_token,omitempty"`
	ServiceName        string                `json:"service_name,omitempty"`
	ServiceNumber      string                `json:"service_number,omitempty"`
	ServiceJobID       string                `json:"service_job_id,omitempty"`
	ServiceJobNumber   string                `json:"service_job_number,omitempty"`
	ServicePullRequest string                `json:"service_pull_request,omitempty"`
	ServiceBuildURL    string                `json:"service_build_url,omitempty"`
	FlagName           string                `json:"flag_name,omitempty"`
	Git                *gitInfo              `json:"git,omitempty"`
	RunAt              string                `json:"run_at,omitempty"`
	SourceFiles        []coverage.SourceFile `json:"source_files"`
}

type gitInfo struct {
	Head    gitHead     `json:"head"`
	Branch  string      `json:"branch,omitempty"`
	Remotes []gitRemote `json:"remotes,omitempty"`
}

type gitHead struct {
	ID             string `json:"id,omitempty"`
	AuthorName     string `json:"author_name,omitempty"`
	AuthorEmail    string `json:"author_email,omitempty"`
	CommitterName  string `json:"committer_name,omitempty"`
	CommitterEmail string `json:"committer_email,omitempty"`
	Message        string `json:"message,omitempty"`
}

type gitRemote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func newPayload(job Job) payload {
	r := job.Config
	p := payload{
		RepoToken:          r.Value(config.FieldRepoToken),
		ServiceName:        r.Value(config.FieldServiceName),
		ServiceNumber:      r.Value(config.FieldServiceNumber),
		ServiceJobID:       r.Value(config.FieldServiceJobID),
		ServiceJobNumber:   r.Value(config.FieldServiceJobNumber),
		ServicePullRequest: r.Value(config.FieldServicePullRequest),
		ServiceBuildURL:    r.Value(config.FieldServiceBuildURL),
		FlagName:           r.Value(config.FieldFlagName),
		SourceFiles:        job.SourceFiles,
	}
	if p.SourceFiles == nil {
		p.SourceFiles = []coverage.SourceFile{}
	}
	if !job.RunAt.IsZero() {
		p.RunAt = job.RunAt.UTC().Format(time.RFC3339)
	}

	git := gitInfo{
		Head: gitHead{
			ID:             r.Value(config.FieldGitID),
			AuthorName:     r.Value(config.FieldGitAuthorName),
			AuthorEmail:    r.Value(config.FieldGitAuthorEmail),
			CommitterName:  r.Value(config.FieldGitCommitterName),
			CommitterEmail: r.Value(config.FieldGitCommitterEmail),
			Message:        r.Value(config.FieldGitMessage),
		},
		Branch: r.Value(config.FieldGitBranch),
	}
	if url, ok := r.Get(config.FieldGitRemoteURL); ok {
		name := defaultRemoteName
		if v, ok := r.Get(config.FieldGitRemoteName); ok {
			name = v
		}
		git.Remotes = []gitRemote{{Name: name, URL: url}}
	}
	if git.Head != (gitHead{}) || git.Branch != "" || len(git.Remotes) > 0 {
		p.Git = &git
	}

	return p
}

// Encode writes the JSON document uploaded for job.
func Encode(w io.Writer, job Job) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newPayload(job)); err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return nil
}

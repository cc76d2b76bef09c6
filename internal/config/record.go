package config

// Field identifies one optional string field of a Record.
type Field int

// Record fields in the order they are reported.
const (
	FieldRepoToken Field = iota
	FieldFlagName
	FieldServiceName
	FieldServiceNumber
	FieldServiceBuildURL
	FieldServicePullRequest
	FieldServiceJobID
	FieldServiceJobNumber
	FieldGitID
	FieldGitBranch
	FieldGitMessage
	FieldGitAuthorName
	FieldGitAuthorEmail
	FieldGitCommitterName
	FieldGitCommitterEmail
	FieldGitRemoteName
	FieldGitRemoteURL
	FieldSourcePrefix
	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldRepoToken:          "repo_token",
	FieldFlagName:           "flag_name",
	FieldServiceName:        "service_name",
	FieldServiceNumber:      "service_number",
	FieldServiceBuildURL:    "service_build_url",
	FieldServicePullRequest: "service_pull_request",
	FieldServiceJobID:       "service_job_id",
	FieldServiceJobNumber:   "service_job_number",
	FieldGitID:              "git_id",
	FieldGitBranch:          "git_branch",
	FieldGitMessage:         "git_message",
	FieldGitAuthorName:      "git_author_name",
	FieldGitAuthorEmail:     "git_author_email",
	FieldGitCommitterName:   "git_committer_name",
	FieldGitCommitterEmail:  "git_committer_email",
	FieldGitRemoteName:      "git_remote_name",
	FieldGitRemoteURL:       "git_remote_url",
	FieldSourcePrefix:       "source_prefix",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields returns every optional string field.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// Record is the flat coverage job configuration. A nil string field is
// absent: no environment variable or flag provided a value.
type Record struct {
	RepoToken          *string
	FlagName           *string
	ServiceName        *string
	ServiceNumber      *string
	ServiceBuildURL    *string
	ServicePullRequest *string
	ServiceJobID       *string
	ServiceJobNumber   *string
	GitID              *string
	GitBranch          *string
	GitMessage         *string
	GitAuthorName      *string
	GitAuthorEmail     *string
	GitCommitterName   *string
	GitCommitterEmail  *string
	GitRemoteName      *string
	GitRemoteURL       *string
	SourcePrefix       *string

	// PruneDirs is an ordered set of directories excluded from the report.
	PruneDirs      []string
	PruneAbsolutes bool
	NoSend         bool
}

func (r *Record) slot(f Field) **string {
	switch f {
	case FieldRepoToken:
		return &r.RepoToken
	case FieldFlagName:
		return &r.FlagName
	case FieldServiceName:
		return &r.ServiceName
	case FieldServiceNumber:
		return &r.ServiceNumber
	case FieldServiceBuildURL:
		return &r.ServiceBuildURL
	case FieldServicePullRequest:
		return &r.ServicePullRequest
	case FieldServiceJobID:
		return &r.ServiceJobID
	case FieldServiceJobNumber:
		return &r.ServiceJobNumber
	case FieldGitID:
		return &r.GitID
	case FieldGitBranch:
		return &r.GitBranch
	case FieldGitMessage:
		return &r.GitMessage
	case FieldGitAuthorName:
		return &r.GitAuthorName
	case FieldGitAuthorEmail:
		return &r.GitAuthorEmail
	case FieldGitCommitterName:
		return &r.GitCommitterName
	case FieldGitCommitterEmail:
		return &r.GitCommitterEmail
	case FieldGitRemoteName:
		return &r.GitRemoteName
	case FieldGitRemoteURL:
		return &r.GitRemoteURL
	case FieldSourcePrefix:
		return &r.SourcePrefix
	}
	return nil
}

// Set overwrites field f with value.
func (r *Record) Set(f Field, value string) {
	if p := r.slot(f); p != nil {
		*p = &value
	}
}

// Get returns the value of field f and whether it is present.
func (r *Record) Get(f Field) (string, bool) {
	p := r.slot(f)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Value returns the value of field f, or the empty string when absent.
func (r *Record) Value(f Field) string {
	v, _ := r.Get(f)
	return v
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	var out Record
	for _, f := range Fields() {
		if v, ok := r.Get(f); ok {
			out.Set(f, v)
		}
	}
	out.PruneDirs = orderedSet(r.PruneDirs)
	out.PruneAbsolutes = r.PruneAbsolutes
	out.NoSend = r.NoSend
	return out
}

// orderedSet removes duplicates from dirs while keeping first occurrences in order.
func orderedSet(dirs []string) []string {
	if len(dirs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

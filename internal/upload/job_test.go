package upload

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/eugenenazirov/coveralls-ci/internal/config"
)

func TestNewPayloadGitSection(t *testing.T) {
	t.Parallel()

	t.Run("omitted without git fields", func(t *testing.T) {
		if p := newPayload(Job{}); p.Git != nil {
			t.Fatalf("expected no git section, got %+v", p.Git)
		}
	})

	t.Run("remote defaults to origin", func(t *testing.T) {
		var r config.Record
		r.Set(config.FieldGitRemoteURL, "https://github.com/org/repo.git")
		p := newPayload(Job{Config: r})
		if p.Git == nil || len(p.Git.Remotes) != 1 {
			t.Fatalf("expected one remote, got %+v", p.Git)
		}
		if p.Git.Remotes[0].Name != "origin" {
			t.Fatalf("expected origin remote, got %q", p.Git.Remotes[0].Name)
		}
	})

	t.Run("head fields are copied", func(t *testing.T) {
		var r config.Record
		r.Set(config.FieldGitID, "abc")
		r.Set(config.FieldGitMessage, "msg")
		r.Set(config.FieldGitAuthorEmail, "a@example.com")
		r.Set(config.FieldGitRemoteName, "upstream")
		r.Set(config.FieldGitRemoteURL, "git@example.com:org/repo.git")
		p := newPayload(Job{Config: r})
		if p.Git.Head.ID != "abc" || p.Git.Head.Message != "msg" || p.Git.Head.AuthorEmail != "a@example.com" {
			t.Fatalf("unexpected head %+v", p.Git.Head)
		}
		if p.Git.Remotes[0].Name != "upstream" {
			t.Fatalf("expected upstream remote, got %q", p.Git.Remotes[0].Name)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, testJob()); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	var body struct {
		ServiceName string `json:"service_name"`
		Git         struct {
			Branch string `json:"branch"`
		} `json:"git"`
		SourceFiles []struct {
			Name     string `json:"name"`
			Coverage []*int `json:"coverage"`
		} `json:"source_files"`
	}
	if err := json.Unmarshal(buf.Bytes(), &body); err != nil {
		t.Fatalf("decode encoded job: %v", err)
	}
	if body.ServiceName != "circleci" || body.Git.Branch != "main" {
		t.Fatalf("unexpected encoded job %+v", body)
	}
	if len(body.SourceFiles) != 1 || body.SourceFiles[0].Coverage[0] != nil || *body.SourceFiles[0].Coverage[1] != 1 {
		t.Fatalf("unexpected source files %+v", body.SourceFiles)
	}
}

func TestEncodeEmptySourceFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(&buf, Job{}); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"source_files": []`)) {
		t.Fatalf("expected empty source_files array, got %s", buf.String())
	}
}

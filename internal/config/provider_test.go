package config

import (
	"errors"
	"strings"
	"testing"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	for _, p := range Providers() {
		got, err := ParseProvider(p.String())
		if err != nil {
			t.Fatalf("ParseProvider(%q) returned error: %v", p, err)
		}
		if got != p {
			t.Fatalf("expected %v, got %v", p, got)
		}
	}

	if got, err := ParseProvider(" CircleCI "); err != nil || got != CircleCI {
		t.Fatalf("expected case-insensitive match, got %v, %v", got, err)
	}

	if _, err := ParseProvider("gitlab"); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestProviderServiceNames(t *testing.T) {
	t.Parallel()

	for _, p := range Providers() {
		if p == EnvAutoDetect {
			if p.ServiceName() != "" {
				t.Fatalf("expected env provider to have no fixed service name")
			}
			continue
		}
		if !IsKnownService(p.ServiceName()) {
			t.Fatalf("service name %q of %s is not recognized", p.ServiceName(), p)
		}
		if p.Title() == "" {
			t.Fatalf("expected %s to have a title", p)
		}
	}

	if got := Provider(42).String(); !strings.Contains(got, "42") {
		t.Fatalf("unexpected name for unknown provider: %s", got)
	}
}

func TestBindingsAreCopies(t *testing.T) {
	t.Parallel()

	b := Bindings(CircleCI)
	b[0] = Binding{}
	if Bindings(CircleCI)[0].Field != FieldGitBranch {
		t.Fatalf("expected Bindings to return a copy")
	}

	if got := CommonBindings()[len(commonBindings)-1].String(); got != "GIT_BRANCH, BRANCH_NAME: git_branch" {
		t.Fatalf("unexpected binding description %q", got)
	}
}

package config

import (
	"fmt"
	"strings"
)

// Provider is the CI service a job runs on.
type Provider int

// Supported providers. EnvAutoDetect reads the generic CI_* and COVERALLS_*
// variables instead of a provider specific set.
const (
	CircleCI Provider = iota + 1
	Actions
	AppVeyor
	BuildKite
	Travis
	Semaphore
	Jenkins
	EnvAutoDetect
)

type providerInfo struct {
	command string
	title   string
	service string
}

var providerInfos = map[Provider]providerInfo{
	CircleCI:      {command: "circleci", title: "Circle-CI", service: "circleci"},
	Actions:       {command: "actions", title: "GitHub Actions", service: "github"},
	AppVeyor:      {command: "appveyor", title: "AppVeyor", service: "appveyor"},
	BuildKite:     {command: "buildkite", title: "BuildKite", service: "buildkite"},
	Travis:        {command: "travis", title: "Travis-CI", service: "travis-ci"},
	Semaphore:     {command: "semaphore", title: "Semaphore-CI", service: "semaphore-ci"},
	Jenkins:       {command: "jenkins", title: "Jenkins", service: "jenkins"},
	EnvAutoDetect: {command: "env", title: "environment", service: ""},
}

// knownServices maps the service names accepted in CI_NAME and
// COVERALLS_SERVICE_NAME to the identity reported to Coveralls.
var knownServices = map[string]string{
	"circleci":       "circleci",
	"travis-ci":      "travis-ci",
	"appveyor":       "appveyor",
	"jenkins":        "jenkins",
	"semaphore-ci":   "semaphore-ci",
	"github-actions": "github",
	"github":         "github",
	"buildkite":      "buildkite",
}

// Providers returns every provider in command order.
func Providers() []Provider {
	return []Provider{CircleCI, Actions, AppVeyor, BuildKite, Travis, Semaphore, Jenkins, EnvAutoDetect}
}

// ParseProvider returns the provider whose command name is name.
func ParseProvider(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Providers() {
		if providerInfos[p].command == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// String returns the command name of p.
func (p Provider) String() string {
	if info, ok := providerInfos[p]; ok {
		return info.command
	}
	return fmt.Sprintf("provider(%d)", int(p))
}

// Title returns a human readable name for help output.
func (p Provider) Title() string {
	return providerInfos[p].title
}

// ServiceName returns the service identity reported to Coveralls. It is empty
// for EnvAutoDetect, whose identity comes from the environment.
func (p Provider) ServiceName() string {
	return providerInfos[p].service
}

// IsKnownService reports whether name is a recognized service identity.
func IsKnownService(name string) bool {
	for _, service := range knownServices {
		if service == name {
			return true
		}
	}
	return false
}

func normalizeServiceName(value string) string {
	if service, ok := knownServices[strings.ToLower(strings.TrimSpace(value))]; ok {
		return service
	}
	return value
}

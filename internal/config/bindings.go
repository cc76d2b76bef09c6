package config

import (
	"strings"
)

// Binding maps environment variables onto one Record field. Every variable
// is checked in order and a later present variable overwrites an earlier one.
type Binding struct {
	Field     Field
	Vars      []string
	Transform func(string) string
}

func (b Binding) String() string {
	return strings.Join(b.Vars, ", ") + ": " + b.Field.String()
}

func bind(f Field, vars ...string) Binding {
	return Binding{Field: f, Vars: vars}
}

var circleCIBindings = []Binding{
	bind(FieldGitBranch, "CIRCLE_BRANCH"),
	bind(FieldServiceJobID, "CIRCLE_WORKFLOW_JOB_ID"),
	bind(FieldServiceNumber, "CIRCLE_WORKFLOW_ID", "CIRCLE_BUILD_NUM"),
	{Field: FieldServicePullRequest, Vars: []string{"CIRCLE_PULL_REQUEST"}, Transform: lastPathSegment},
	bind(FieldServiceBuildURL, "CIRCLE_BUILD_URL"),
}

var actionsBindings = []Binding{
	bind(FieldGitBranch, "GITHUB_REF", "GITHUB_HEAD_REF"),
	bind(FieldServiceNumber, "GITHUB_RUN_ID"),
	bind(FieldServicePullRequest, "GITHUB_REF"),
	bind(FieldServiceJobID, "GITHUB_JOB"),
	bind(FieldServiceJobNumber, "GITHUB_RUN_NUMBER"),
}

var appVeyorBindings = []Binding{
	bind(FieldGitBranch, "APPVEYOR_REPO_BRANCH"),
	bind(FieldServiceNumber, "APPVEYOR_BUILD_NUMBER"),
	bind(FieldServicePullRequest, "APPVEYOR_PULL_REQUEST_NUMBER"),
	bind(FieldServiceJobID, "APPVEYOR_BUILD_ID"),
	bind(FieldServiceJobNumber, "APPVEYOR_JOB_NUMBER"),
}

var buildKiteBindings = []Binding{
	bind(FieldGitBranch, "BUILDKITE_BRANCH"),
	bind(FieldServiceNumber, "BUILDKITE_BUILD_NUMBER"),
	bind(FieldServicePullRequest, "BUILDKITE_PULL_REQUEST"),
	bind(FieldServiceBuildURL, "BUILDKITE_BUILD_URL"),
	bind(FieldServiceJobID, "BUILDKITE_JOB_ID"),
}

var travisBindings = []Binding{
	bind(FieldGitBranch, "TRAVIS_BRANCH"),
	bind(FieldServiceNumber, "TRAVIS_BUILD_NUMBER"),
	bind(FieldServicePullRequest, "TRAVIS_PULL_REQUEST"),
	bind(FieldServiceBuildURL, "TRAVIS_BUILD_WEB_URL"),
	bind(FieldServiceJobID, "TRAVIS_JOB_ID"),
	bind(FieldServiceJobNumber, "TRAVIS_JOB_NUMBER"),
}

var semaphoreBindings = []Binding{
	bind(FieldGitBranch, "SEMAPHORE_GIT_BRANCH"),
	bind(FieldServiceNumber, "SEMAPHORE_EXECUTABLE_UUID", "SEMAPHORE_WORKFLOW_ID"),
	bind(FieldServicePullRequest, "SEMAPHORE_BRANCH_ID", "SEMAPHORE_GIT_PR_NUMBER"),
	bind(FieldServiceJobID, "SEMAPHORE_JOB_UUID", "SEMAPHORE_JOB_ID"),
	bind(FieldServiceJobNumber, "SEMAPHORE_WORKFLOW_NUMBER"),
}

var jenkinsBindings = []Binding{
	bind(FieldServiceNumber, "BUILD_NUMBER"),
	bind(FieldServicePullRequest, "CI_PULL_REQUEST"),
	bind(FieldServiceBuildURL, "BUILD_URL"),
	bind(FieldServiceJobID, "BUILD_ID"),
}

var envBindings = []Binding{
	{Field: FieldServiceName, Vars: []string{"CI_NAME", "COVERALLS_SERVICE_NAME"}, Transform: normalizeServiceName},
	bind(FieldServiceNumber, "CI_BUILD_NUMBER", "COVERALLS_SERVICE_NUMBER"),
	bind(FieldServiceBuildURL, "CI_BUILD_URL", "COVERALLS_BUILD_URL"),
	bind(FieldServiceJobID, "CI_JOB_ID", "COVERALLS_SERVICE_JOB_ID"),
	bind(FieldServiceJobNumber, "CI_JOB_NUMBER", "COVERALLS_SERVICE_JOB_NUMBER"),
	bind(FieldServicePullRequest, "CI_PULL_REQUEST", "COVERALLS_PULL_REQUEST"),
	bind(FieldGitBranch, "CI_BRANCH", "COVERALLS_BRANCH"),
}

// commonBindings overlay every provider specific set.
var commonBindings = []Binding{
	bind(FieldRepoToken, "COVERALLS_REPO_TOKEN"),
	bind(FieldFlagName, "COVERALLS_FLAG_NAME"),
	bind(FieldGitID, "GIT_ID"),
	bind(FieldGitMessage, "GIT_MESSAGE"),
	bind(FieldGitAuthorName, "GIT_AUTHOR_NAME"),
	bind(FieldGitAuthorEmail, "GIT_AUTHOR_EMAIL"),
	bind(FieldGitCommitterName, "GIT_COMMITTER_NAME"),
	bind(FieldGitCommitterEmail, "GIT_COMMITTER_EMAIL"),
	bind(FieldGitRemoteName, "GIT_REMOTE"),
	bind(FieldGitRemoteURL, "GIT_URL"),
	bind(FieldGitBranch, "GIT_BRANCH", "BRANCH_NAME"),
}

var providerBindings = map[Provider][]Binding{
	CircleCI:      circleCIBindings,
	Actions:       actionsBindings,
	AppVeyor:      appVeyorBindings,
	BuildKite:     buildKiteBindings,
	Travis:        travisBindings,
	Semaphore:     semaphoreBindings,
	Jenkins:       jenkinsBindings,
	EnvAutoDetect: envBindings,
}

// Bindings returns the provider specific bindings of p.
func Bindings(p Provider) []Binding {
	return append([]Binding(nil), providerBindings[p]...)
}

// CommonBindings returns the bindings applied after every provider.
func CommonBindings() []Binding {
	return append([]Binding(nil), commonBindings...)
}

// lastPathSegment returns the part of value after its last slash, so a pull
// request URL resolves to the pull request number.
func lastPathSegment(value string) string {
	if i := strings.LastIndex(value, "/"); i >= 0 {
		return value[i+1:]
	}
	return value
}

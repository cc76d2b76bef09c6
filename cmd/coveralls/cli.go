package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/coveralls-ci/internal/application"
	"github.com/eugenenazirov/coveralls-ci/internal/config"
)

type providerFlag struct {
	field config.Field
	short rune
	help  string
}

// providerFlags are registered on every command except env. Long names are
// the record field names with dashes.
var providerFlags = []providerFlag{
	{config.FieldRepoToken, 't', "Repository token"},
	{config.FieldFlagName, 'f', "Job flag name, e.g. \"Unit\", \"Functional\", or \"Integration\""},
	{config.FieldServiceNumber, 's', "Build number"},
	{config.FieldServiceBuildURL, 'u', "Build URL"},
	{config.FieldServicePullRequest, 'p', "Pull request number"},
	{config.FieldServiceJobID, 'j', "Job ID"},
	{config.FieldServiceJobNumber, 'n', "Job number"},
	{config.FieldGitID, 'k', "Commit hash"},
	{config.FieldGitBranch, 'b', "Branch name"},
	{config.FieldGitMessage, 'm', "Commit message"},
	{config.FieldGitAuthorName, 'a', "Commit author name"},
	{config.FieldGitAuthorEmail, 'A', "Commit author email"},
	{config.FieldGitCommitterName, 'c', "Committer name"},
	{config.FieldGitCommitterEmail, 'C', "Committer email"},
	{config.FieldGitRemoteName, 'r', "Git remote name"},
	{config.FieldGitRemoteURL, 'R', "Git remote URL"},
}

// globalValueFlags are the global flags that take the next argument as
// their value.
var globalValueFlags = map[string]bool{
	"--config":        true,
	"--endpoint":      true,
	"--log-level":     true,
	"--source-prefix": true,
	"-P":              true,
	"--prune-dir":     true,
	"-D":              true,
}

// invocation is a parsed command line.
type invocation struct {
	settings config.SettingsOverrides
	run      application.Invocation
}

type command struct {
	provider config.Provider
	input    *string
	values   map[config.Field]*string
}

type cli struct {
	app      *kingpin.Application
	commands map[string]*command

	configFile     *string
	endpoint       *string
	logLevel       *string
	sourcePrefix   *string
	pruneDirs      *[]string
	pruneAbsolutes *bool
	noSend         *bool
}

func newCLI() *cli {
	app := kingpin.New("coveralls", "Report coverage results from a CI build to Coveralls")
	c := &cli{
		app:      app,
		commands: make(map[string]*command),

		configFile:     app.Flag("config", "Path to YAML settings file").String(),
		endpoint:       app.Flag("endpoint", "Coveralls endpoint URL").String(),
		logLevel:       app.Flag("log-level", "Log level (debug, info, warn, error)").String(),
		sourcePrefix:   app.Flag("source-prefix", "Directory prefix joined to every source file name").Short('P').String(),
		pruneDirs:      app.Flag("prune-dir", "Directory excluded from the report (repeatable)").Short('D').Strings(),
		pruneAbsolutes: app.Flag("prune-absolutes", "Exclude files with absolute paths").Short('X').Bool(),
		noSend:         app.Flag("no-send", "Print the job instead of uploading it").Short('z').Bool(),
	}

	for _, p := range config.Providers() {
		cmd := app.Command(p.String(), commandHelp(p))
		entry := &command{
			provider: p,
			input:    cmd.Arg("file_name", "Coverage report file (defaults to standard input)").String(),
			values:   make(map[config.Field]*string),
		}
		if p != config.EnvAutoDetect {
			for _, pf := range providerFlags {
				long := strings.ReplaceAll(pf.field.String(), "_", "-")
				entry.values[pf.field] = cmd.Flag(long, pf.help).Short(pf.short).String()
			}
		}
		c.commands[cmd.FullCommand()] = entry
	}

	return c
}

// commandHelp lists the environment variables the command reads.
func commandHelp(p config.Provider) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report coverage from %s. Used environment variables: ", p.Title())
	bindings := append(config.Bindings(p), config.CommonBindings()...)
	for i, binding := range bindings {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(binding.String())
	}
	return b.String()
}

func (c *cli) parse(args []string) (*invocation, error) {
	selected, err := c.app.Parse(c.hoistInput(args))
	if err != nil {
		return nil, err
	}
	cmd, ok := c.commands[selected]
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownProvider, selected)
	}

	inv := &invocation{
		settings: config.SettingsOverrides{ConfigFile: *c.configFile},
		run: application.Invocation{
			Provider:  cmd.provider,
			InputPath: *cmd.input,
		},
	}

	if *c.endpoint != "" {
		inv.settings.Endpoint = c.endpoint
	}

	if *c.logLevel != "" {
		inv.settings.LogLevel = c.logLevel
	}

	overrides := &inv.run.Overrides
	for field, value := range cmd.values {
		if *value != "" {
			overrides.Set(field, *value)
		}
	}
	if *c.sourcePrefix != "" {
		overrides.Set(config.FieldSourcePrefix, *c.sourcePrefix)
	}
	overrides.PruneDirs = append([]string(nil), *c.pruneDirs...)
	overrides.PruneAbsolutes = *c.pruneAbsolutes
	overrides.NoSend = *c.noSend

	return inv, nil
}

// hoistInput moves an input file given before the command to just after it,
// so "report.lcov circleci" parses like "circleci report.lcov".
func (c *cli) hoistInput(args []string) []string {
	var positions []int
	for i := 0; i < len(args) && len(positions) < 2; i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			if globalValueFlags[arg] {
				i++
			}
			continue
		}
		positions = append(positions, i)
	}
	if len(positions) != 2 {
		return args
	}

	input, command := positions[0], positions[1]
	if c.isCommand(args[input]) || !c.isCommand(args[command]) {
		return args
	}

	out := make([]string, 0, len(args))
	out = append(out, args[:input]...)
	out = append(out, args[input+1:command+1]...)
	out = append(out, args[input])
	out = append(out, args[command+1:]...)
	return out
}

func (c *cli) isCommand(name string) bool {
	_, ok := c.commands[name]
	return ok
}

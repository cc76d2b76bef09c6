package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coveralls-ci/internal/config"
	"github.com/eugenenazirov/coveralls-ci/internal/coverage"
	"github.com/eugenenazirov/coveralls-ci/internal/env"
	"github.com/eugenenazirov/coveralls-ci/internal/upload"
)

const redactedToken = "[redacted]"

// Uploader submits a finished job.
type Uploader interface {
	Upload(ctx context.Context, job upload.Job) (*upload.Response, error)
}

// Invocation is what the command line asked for.
type Invocation struct {
	Provider config.Provider
	// Overrides holds the values given explicitly on the command line.
	Overrides config.Record
	// InputPath is the coverage report; empty or "-" reads standard input.
	InputPath string
}

// Result describes a completed run.
type Result struct {
	Config   config.Record
	Files    int
	Sent     bool
	Response *upload.Response
}

// App encapsulates the reporter dependencies.
type App struct {
	env      env.Getter
	uploader Uploader
	logger   *zap.Logger
	stdin    io.Reader
	stdout   io.Writer
	readFile coverage.ReadFileFunc
	clock    func() time.Time
}

// Option configures App behaviour.
type Option func(*App)

// WithEnv overrides the environment the job is resolved from.
func WithEnv(e env.Getter) Option {
	return func(a *App) {
		a.env = e
	}
}

// WithUploader overrides the uploader, primarily for tests.
func WithUploader(u Uploader) Option {
	return func(a *App) {
		a.uploader = u
	}
}

// WithStdio overrides standard input and output.
func WithStdio(stdin io.Reader, stdout io.Writer) Option {
	return func(a *App) {
		a.stdin = stdin
		a.stdout = stdout
	}
}

// WithReadFile overrides how source files are read for digests.
func WithReadFile(readFile coverage.ReadFileFunc) Option {
	return func(a *App) {
		a.readFile = readFile
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// New initializes the application with all dependencies from the provided settings.
func New(settings config.Settings, logger *zap.Logger, opts ...Option) *App {
	a := &App{
		env:      env.New(),
		logger:   logger,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		readFile: os.ReadFile,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.uploader == nil {
		a.uploader = upload.New(settings, a.logger)
	}
	return a
}

// Resolve builds the final configuration record of inv: provider variables,
// then common variables, then the explicit overrides.
func (a *App) Resolve(inv Invocation) (config.Record, error) {
	base, err := config.Resolve(inv.Provider, a.env)
	if err != nil {
		return config.Record{}, err
	}
	record := config.Merge(base, inv.Overrides)

	if name, ok := record.Get(config.FieldServiceName); ok && !config.IsKnownService(name) {
		a.logger.Warn("unrecognized CI service name, continuing with generic variables",
			zap.String("service_name", name),
		)
	}
	if inv.Provider == config.EnvAutoDetect && record.ServiceName == nil {
		a.logger.Warn("no CI service name found in CI_NAME or COVERALLS_SERVICE_NAME")
	}

	a.logger.Debug("configuration resolved", fieldsOf(inv.Provider, record)...)
	return record, nil
}

// Run resolves the job, reads the coverage input and uploads it unless the
// record asks for a dry run, in which case the job document is written to
// standard output instead.
func (a *App) Run(ctx context.Context, inv Invocation) (*Result, error) {
	record, err := a.Resolve(inv)
	if err != nil {
		return nil, err
	}

	report, err := a.readReport(inv.InputPath, record.NoSend)
	if err != nil {
		return nil, err
	}
	report = coverage.Filter(report, coverage.Options{
		SourcePrefix:   record.Value(config.FieldSourcePrefix),
		PruneDirs:      record.PruneDirs,
		PruneAbsolutes: record.PruneAbsolutes,
	})

	job := upload.Job{
		Config:      record,
		SourceFiles: coverage.SourceFiles(report, a.readFile),
		RunAt:       a.clock(),
	}
	result := &Result{Config: record, Files: len(job.SourceFiles)}

	if record.NoSend {
		dry := job
		dry.Config = record.Clone()
		if dry.Config.RepoToken != nil {
			dry.Config.Set(config.FieldRepoToken, redactedToken)
		}
		if err := upload.Encode(a.stdout, dry); err != nil {
			return nil, err
		}
		a.logger.Info("no_send set, skipping upload", zap.Int("source_files", result.Files))
		return result, nil
	}

	resp, err := a.uploader.Upload(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("upload coverage: %w", err)
	}
	result.Sent = true
	result.Response = resp

	a.logger.Info("coverage uploaded",
		zap.String("message", resp.Message),
		zap.String("url", resp.URL),
		zap.Int("source_files", result.Files),
	)
	return result, nil
}

// readReport parses the input. An empty report is accepted only for dry
// runs so the resolved job can still be inspected.
func (a *App) readReport(path string, allowEmpty bool) (*coverage.Report, error) {
	var in io.Reader = a.stdin
	name := "standard input"
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
		name = path
	}

	report, err := coverage.Parse(in)
	if allowEmpty && errors.Is(err, coverage.ErrEmptyReport) {
		a.logger.Warn("coverage report has no source files", zap.String("input", name))
		return &coverage.Report{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	a.logger.Debug("coverage report read",
		zap.String("input", name),
		zap.String("format", string(report.Format)),
		zap.Int("files", len(report.Files)),
	)
	return report, nil
}

// fieldsOf lists the resolved values for debug logs. The repo token is only
// reported as present or absent.
func fieldsOf(p config.Provider, r config.Record) []zap.Field {
	fields := []zap.Field{zap.String("provider", p.String())}
	for _, f := range config.Fields() {
		v, ok := r.Get(f)
		if !ok {
			continue
		}
		if f == config.FieldRepoToken {
			fields = append(fields, zap.Bool(f.String(), true))
			continue
		}
		fields = append(fields, zap.String(f.String(), v))
	}
	fields = append(fields,
		zap.Strings("prune_dirs", r.PruneDirs),
		zap.Bool("prune_absolutes", r.PruneAbsolutes),
		zap.Bool("no_send", r.NoSend),
	)
	return fields
}

// Package coverage reads the coverage report handed to the reporter, either
// LCOV tracefiles or Go cover profiles, applies the job's path options and
// converts every file into the line and branch arrays Coveralls expects.
package coverage

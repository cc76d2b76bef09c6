// Package application provides dependency wiring and the run pipeline of the
// reporter: resolve the job configuration from the environment, merge CLI
// overrides, read the coverage input and hand the finished job to the
// uploader, making the main package focused on CLI parsing.
package application

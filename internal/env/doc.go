// Package env reads CI variables from the process environment. Empty and
// undefined variables are reported as absent; values that are not valid
// text are reported as errors.
package env

// Package upload submits resolved coverage jobs to the Coveralls API.
package upload

// Package build provides the canonical render pipeline for sitecfg.
//
// Every execution path (the render command, watch mode, tests) goes through
// BuildService: load the overlay, optionally run the link checks, render the
// record and write it atomically.
package build

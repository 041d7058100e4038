// Package errors provides the classified error primitives used across sitecfg.
//
// Errors carry a category (config, validation, render, links, ...), a severity
// and structured context. The CLI adapter maps categories to process exit codes.
//
// Example usage:
//
//	err := errors.ConfigError("unsupported overlay version").
//		WithContext("version", v).
//		Build()
package errors

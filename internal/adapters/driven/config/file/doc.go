// Package file provides the TOML-backed configuration store.
//
// Configuration lives at ~/.digestpdf/config.toml unless another directory
// is given. Keys use dot notation and map to TOML tables:
//
//	[summary]
//	sentences = 3
//	max_chars = 20000
//
//	[index]
//	policy = "append"
package file

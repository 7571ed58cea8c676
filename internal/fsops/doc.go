// Package fsops holds the file-system primitives behind the file tools.
//
// Paths are used as given, relative to the process working directory.
package fsops

// Package core holds the filesystem abstraction and constants shared by the
// podsrc packages.
package core

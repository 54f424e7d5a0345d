// Package source provides pod specification sources.
//
// A Source answers the queries the resolver needs: which pods exist, which
// versions of a pod are available, and which file defines a given version.
// LocalSource implements Source over a directory tree of specification files.
//
// A LocalSource scans its directory at most once, on the first query that
// needs the index, and serves every later query from memory. Files added,
// changed or removed after that scan are not observed; discard the
// LocalSource and create a new one to pick them up. The existence of the root
// directory, however, is re-checked on every query.
package source

// Package store provides the process-wide list state: the display order of catalog
// ids and the selection set.
//
// Both are guarded by one lock so that every mutation is atomic with respect to
// concurrent reads and other mutations.
package store

// Package app provides the application service layer.
//
// Orchestrates the list use cases: paginated reads, move-to-front by label,
// validated reorder and selection changes. Sits between HTTP handlers and the list
// store. Depends on domain interfaces, not concrete implementations.
package app

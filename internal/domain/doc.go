// Package domain defines the core domain types and interfaces.
//
// Items, list pages, change events and the contracts between the application layer
// and its adapters. No implementation code - just contracts.
package domain

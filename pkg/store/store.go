// Package store defines the data-access surface for users and issues.
//
// Every method receives the database handle it runs against. The store
// never opens, closes, or keeps a handle between calls.
package store

// Store is an interface for managing users and issues.
type Store interface {
	UserStore
	IssueStore
}

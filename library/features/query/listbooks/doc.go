// Package listbooks implements the List Books query use case.
//
// It returns all books of the library ordered by serial number, borrowed or not.
// This is a read-only operation which tolerates slightly stale data from a replica.
package listbooks

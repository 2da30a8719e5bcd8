// Package removebook implements the Remove Book use case.
//
// Removing a book which does not exist is not an error, the handler reports an idempotent result.
package removebook

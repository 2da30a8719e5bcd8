// Package listusers implements the List Users query use case.
//
// It returns all registered users ordered by card number.
package listusers

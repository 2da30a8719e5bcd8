// Package addbook implements the Add Book use case.
//
// A new book is always Available. The serial number must be a valid identifier and
// must not be taken yet, title and author must not be empty and fit the schema limits.
package addbook

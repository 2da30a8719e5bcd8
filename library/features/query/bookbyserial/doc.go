// Package bookbyserial implements the Book By Serial Number query use case.
//
// It returns one book including its lending state, or recordstore.ErrBookNotFound.
package bookbyserial

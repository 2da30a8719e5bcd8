package listbooks

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// BooksInLibrary represents the query result containing all books.
type BooksInLibrary struct {
	Books []recordstore.Book
	Count int
}

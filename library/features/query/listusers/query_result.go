package listusers

import (
	"github.com/AntonStoeckl/library-records-go/recordstore"
)

// RegisteredUsers represents the query result containing all users.
type RegisteredUsers struct {
	Users []recordstore.User
	Count int
}

// Package removeuser implements the Remove User use case.
//
// Removing a user first returns every book the user still has borrowed, then deletes the user,
// all inside one transaction. A borrowed book which turns out to be available already is skipped,
// any other failure while returning aborts the removal and rolls everything back.
// Removing a user who does not exist is not an error, the handler reports an idempotent result.
package removeuser

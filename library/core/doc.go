// Package core contains the pure lending rules of the library records service.
//
// A book is either Available or Borrowed. The decide functions in this package take
// the current state of a book (as read inside the running transaction) and a request,
// and return a DecisionResult: the lending columns to write, or the business rule
// which forbids the transition. They have no side effects and never touch the store.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core

// Package shell provides the infrastructure shared by the command and query handlers
// of the library records service: handler contracts, handler results, retry of
// serialization conflicts, and observability helpers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell

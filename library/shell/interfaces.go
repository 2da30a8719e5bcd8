package shell

import (
	"context"
)

// Command represents the contract for all command types of the library records service.
// Each command encapsulates the intent and parameters needed to execute a specific business operation.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the complete command workflow inside one serializable transaction:
// read the current records, decide, write.
// Handlers return HandlerResult containing business outcomes (idempotency) and execution metadata (retry info).
// This interface is designed to be wrapped with observability decorators.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types of the library records service.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that answer queries from the record store.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

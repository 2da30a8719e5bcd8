package recordstore

import "context"

// ConsistencyLevel tells the store which database a transaction may run on.
type ConsistencyLevel int

const (
	// StrongConsistency pins the transaction to the primary. It is the default, and writing transactions always use it.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency lets a read-only transaction run on the replica, if the store has one.
	// Data read this way may lag behind the last committed write.
	EventualConsistency
)

type consistencyKey struct{}

// WithStrongConsistency marks ctx so that the following transaction runs on the primary.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, StrongConsistency)
}

// WithEventualConsistency marks ctx so that a following Store.Read may run on the replica.
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, consistencyKey{}, EventualConsistency)
}

// GetConsistencyLevel returns the level ctx was marked with, StrongConsistency if it was not marked.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	level, ok := ctx.Value(consistencyKey{}).(ConsistencyLevel)
	if !ok {
		return StrongConsistency
	}

	return level
}

func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}

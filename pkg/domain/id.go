package domain

// IDGenerator produces identifiers for new aggregates.
type IDGenerator[T any] func() T

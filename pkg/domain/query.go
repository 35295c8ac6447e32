package domain

// Query asks for state without changing it.
type Query[T any] interface {
	QueryName() string
	Payload() T
}

package fetcher

// Result carries the outcome of one fetch. When the backend fails, Value is
// the zero value and Err holds a *provider.TransportError.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// OrEmpty returns Value, which is the empty record on failure.
func (r Result[T]) OrEmpty() T { return r.Value }

// Get returns Value and Err.
func (r Result[T]) Get() (T, error) { return r.Value, r.Err }

func ok[T any](v T) Result[T] { return Result[T]{Value: v} }

func failed[T any](err error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Err: err}
}

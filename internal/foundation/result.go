// Package foundation provides generic utilities for type-safe operations.
package foundation

import "fmt"

// Result holds either a value of type T or an error of type E, never both.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, isOk: true}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// IsOk returns true if the Result represents a successful operation.
func (r Result[T, E]) IsOk() bool {
	return r.isOk
}

// IsErr returns true if the Result represents a failed operation.
func (r Result[T, E]) IsErr() bool {
	return !r.isOk
}

// Value returns the value and whether the Result is Ok.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.isOk
}

// Failure returns the error and whether the Result is Err.
func (r Result[T, E]) Failure() (E, bool) {
	return r.err, !r.isOk
}

// Unwrap returns the value if Ok, panics if Err.
func (r Result[T, E]) Unwrap() T {
	if !r.isOk {
		panic(fmt.Sprintf("called Unwrap on Err result: %v", r.err))
	}
	return r.value
}

// UnwrapErr returns the error if Err, panics if Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.isOk {
		panic("called UnwrapErr on Ok result")
	}
	return r.err
}

// Match executes onOk if successful, onErr if failed.
func (r Result[T, E]) Match(onOk func(T), onErr func(E)) {
	if r.isOk {
		onOk(r.value)
		return
	}
	onErr(r.err)
}

// Map transforms a successful Result[T, E] to Result[U, E].
func Map[T, U any, E error](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.isOk {
		return Ok[U, E](fn(r.value))
	}
	return Err[U, E](r.err)
}

// Tuple converts the Result to the (value, error) pair. A failed Result always
// yields a non-nil error interface; a successful one yields a nil interface,
// never a typed nil.
func (r Result[T, E]) Tuple() (T, error) {
	if r.isOk {
		return r.value, nil
	}
	var zero T
	return zero, r.err
}

// Package result models the outcome of a remote call: a value, a classified
// Failure, or a cancellation that callers are expected to drop silently.
package result

import "fmt"

// Unit is the value of a successful call that returns nothing.
type Unit struct{}

type state uint8

const (
	stateSuccess state = iota
	stateFailure
	stateCanceled
)

// Result is a three-state outcome. The zero value is a Success holding
// the zero T; build results with Success, Fail or Canceled instead.
type Result[T any] struct {
	value   T
	failure *Failure
	cause   error
	state   state
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, state: stateSuccess}
}

// Fail wraps a classified failure. A nil failure becomes Unknown.
func Fail[T any](f *Failure) Result[T] {
	if f == nil {
		f = Unknown("")
	}
	return Result[T]{failure: f, state: stateFailure}
}

// Canceled records that the caller gave up. cause is normally ctx.Err().
func Canceled[T any](cause error) Result[T] {
	return Result[T]{cause: cause, state: stateCanceled}
}

func (r Result[T]) IsSuccess() bool  { return r.state == stateSuccess }
func (r Result[T]) IsFailure() bool  { return r.state == stateFailure }
func (r Result[T]) IsCanceled() bool { return r.state == stateCanceled }

// Value returns the success value, or the zero T.
func (r Result[T]) Value() T { return r.value }

// Failure returns the failure, or nil.
func (r Result[T]) Failure() *Failure { return r.failure }

// Err returns nil on success, the *Failure on failure, and the
// cancellation cause otherwise.
func (r Result[T]) Err() error {
	switch r.state {
	case stateFailure:
		return r.failure
	case stateCanceled:
		return r.cause
	default:
		return nil
	}
}

// Get converts the result into the usual (value, error) pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.Err()
}

// Match calls exactly one of the callbacks, or none when canceled.
func (r Result[T]) Match(onSuccess func(T), onFailure func(*Failure)) {
	switch r.state {
	case stateSuccess:
		onSuccess(r.value)
	case stateFailure:
		onFailure(r.failure)
	}
}

func (r Result[T]) String() string {
	switch r.state {
	case stateFailure:
		return "Failure(" + r.failure.Error() + ")"
	case stateCanceled:
		return fmt.Sprintf("Canceled(%v)", r.cause)
	default:
		return fmt.Sprintf("Success(%v)", r.value)
	}
}

// Map transforms a success value and forwards failure or cancellation.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.state {
	case stateSuccess:
		return Success(fn(r.value))
	case stateFailure:
		return Fail[U](r.failure)
	default:
		return Canceled[U](r.cause)
	}
}

// FlatMap chains a call that itself returns a Result.
func FlatMap[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	switch r.state {
	case stateSuccess:
		return fn(r.value)
	case stateFailure:
		return Fail[U](r.failure)
	default:
		return Canceled[U](r.cause)
	}
}

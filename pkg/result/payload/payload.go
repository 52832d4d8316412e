// Package payload is the typed counterpart of package result: the same
// outcome value with a Data field that is only set on success.
package payload

import (
	"go.uber.org/zap/zapcore"

	"github.com/Philanthropists/opresult/pkg/result"
)

// Outcome is satisfied by anything exposing a value and an error.
type Outcome[T any] interface {
	Value() T
	Err() error
}

var _ Outcome[int] = Result[int]{}

// Result is a result.Result carrying Data on success.
type Result[T any] struct {
	result.Result
	Data T `json:"data,omitempty" dynamodbav:"Data,omitempty"`
}

func (r Result[T]) Value() T {
	return r.Data
}

// Base drops the payload.
func (r Result[T]) Base() result.Result {
	return r.Result
}

func (r Result[T]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if err := r.Result.MarshalLogObject(enc); err != nil {
		return err
	}

	if r.Success {
		return enc.AddReflected("data", r.Data)
	}

	return nil
}

// Lift wraps r with the zero payload.
func Lift[T any](r result.Result) Result[T] {
	return Result[T]{Result: r}
}

func Success[T any](data T) Result[T] {
	return Result[T]{
		Result: result.Success(),
		Data:   data,
	}
}

func Fail[T any](errorMsg string) Result[T] {
	return Lift[T](result.Fail(errorMsg))
}

func FailWithRunPrefix[T any](errorMsg string) Result[T] {
	return Lift[T](result.FailWithRunPrefix(errorMsg))
}

func NotFound[T any]() Result[T] {
	return Lift[T](result.NotFound())
}

func FromError[T any](err error) Result[T] {
	return Lift[T](result.FromError(err))
}

func StorageError[T any]() Result[T] {
	return Lift[T](result.StorageError())
}

// From follows the (value, error) convention: v is kept only when err is nil.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return FromError[T](err)
	}

	return Success(v)
}

// Map applies fn to the payload of a successful result. Failures keep their
// message.
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	if !r.Success {
		return Lift[B](r.Result)
	}

	return Success(fn(r.Data))
}

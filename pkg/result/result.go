// Package result provides a value describing the outcome of an operation:
// a success flag plus an optional human-readable message.
//
// The zero Result is a failure. Factories always set the flag explicitly.
package result

import (
	"github.com/zeebo/errs"
	"go.uber.org/zap/zapcore"
)

// Error is the class of errors produced by Result.Err.
var Error = errs.Class("result")

// Result is the outcome of an operation. Message is empty on a bare success.
type Result struct {
	Success bool   `json:"success"           dynamodbav:"Success"`
	Message string `json:"message,omitempty" dynamodbav:"Message,omitempty"`
}

func (r Result) Ok() bool {
	return r.Success
}

func (r Result) Failed() bool {
	return !r.Success
}

// Err converts a failed Result into an error of class Error. It returns nil
// on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}

	return Error.New("%s", r.Message)
}

func (r Result) String() string {
	state := "failure"
	if r.Success {
		state = "success"
	}

	if r.Message == "" {
		return state
	}

	return state + ": " + r.Message
}

func (r Result) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("success", r.Success)
	if r.Message != "" {
		enc.AddString("message", r.Message)
	}

	return nil
}

var defaultFactory = NewFactory(English)

func Success() Result {
	return defaultFactory.Success()
}

func Fail(errorMsg string) Result {
	return defaultFactory.Fail(errorMsg)
}

func FailWithRunPrefix(errorMsg string) Result {
	return defaultFactory.FailWithRunPrefix(errorMsg)
}

func NotFound() Result {
	return defaultFactory.NotFound()
}

func FromError(err error) Result {
	return defaultFactory.FromError(err)
}

func StorageError() Result {
	return defaultFactory.StorageError()
}

// From returns Success for a nil error and FromError otherwise.
func From(err error) Result {
	if err == nil {
		return Success()
	}

	return FromError(err)
}

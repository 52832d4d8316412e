package logging

import (
	"context"

	"go.uber.org/zap"

	"github.com/Philanthropists/opresult/pkg/result"
)

// LogOutcome reports r for operation: successes at debug, failures at warn.
func LogOutcome(ctx context.Context, operation string, r result.Result) {
	log := FromContext(ctx).WithOptions(zap.AddCallerSkip(1))

	fields := []Field{
		String("operation", operation),
		Outcome(r),
	}

	if r.Success {
		log.Debug("operation succeeded", fields...)
		return
	}

	log.Warn("operation failed", fields...)
}

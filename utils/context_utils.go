package utils

import (
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// CheckContextDone reports without blocking whether ctx is done, and if so, whether it ended because its deadline
// passed rather than through cancellation.
func CheckContextDone(ctx context.Context) (done bool, deadlineExceeded bool) {
	err := ctx.Err()
	if err == nil {
		return false, false
	}
	return true, errors.Is(err, context.DeadlineExceeded)
}

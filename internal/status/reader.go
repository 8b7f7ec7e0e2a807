// internal/status/reader.go
package status

import (
	"context"
	"errors"

	"github.com/jackchuka/reponest/internal/model"
)

// ErrNotRepository marks a path that is not a git repository. Callers
// test with errors.Is against Info.Err.
var ErrNotRepository = errors.New("not a git repository")

// Reader extracts the state of one repository. Implementations must be
// safe for concurrent use: the dashboard calls Read from many
// goroutines at once. Failures are reported in Info.Err rather than a
// second return so a Reader can feed a result pipeline directly.
type Reader interface {
	Read(ctx context.Context, path string) model.Info
}

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type candidate struct {
	name string
	run  func(ctx context.Context) error
}

// firstSuccess runs the candidates in order until one succeeds and returns its name.
// If all fail the joined errors are returned.
func firstSuccess(ctx context.Context, candidates []candidate) (string, error) {
	var errs []error
	for _, c := range candidates {
		err := c.run(ctx)
		if err == nil {
			return c.name, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		slog.DebugContext(ctx, "Candidate failed, trying next", slog.String("candidate", c.name), slog.Any("err", err))
		errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
	}
	if len(errs) == 0 {
		return "", errors.New("no candidates")
	}
	return "", errors.Join(errs...)
}

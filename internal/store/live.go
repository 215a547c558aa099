package store

import "context"

// LiveResult carries one recomputation of a live query.
type LiveResult[T any] struct {
	Value T
	Err   error
}

// Live runs query immediately, then re-runs it after every committed
// write touching the given collections, pushing each fresh result on the
// returned channel. The channel closes when ctx is done. Results are
// delivered in order and never silently dropped; the subscription's
// pending queue absorbs bursts while the consumer catches up.
func Live[T any](
	ctx context.Context,
	s *SQLiteStore,
	query func(context.Context) (T, error),
	collections ...Collection,
) <-chan LiveResult[T] {
	sub := s.bus.Subscribe(collections...)
	out := make(chan LiveResult[T], 1)

	deliver := func() bool {
		v, err := query(ctx)
		select {
		case out <- LiveResult[T]{Value: v, Err: err}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer sub.Close()
		defer close(out)

		if !deliver() {
			return
		}
		for {
			select {
			case _, ok := <-sub.C():
				if !ok {
					return
				}
				// Coalesce a burst of invalidations into one re-run.
				drained := false
				for !drained {
					select {
					case _, ok := <-sub.C():
						if !ok {
							return
						}
					default:
						drained = true
					}
				}
				if !deliver() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/PrashantJha183/Feedback-backend/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("runs handler after caller context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		async.Dispatch(ctx, "test", func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			done <- ctx.Err()
			return nil
		})
		cancel()

		select {
		case err := <-done:
			gt.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("handler was not executed")
		}
	})

	t.Run("recovers from panic and error", func(t *testing.T) {
		done := make(chan struct{}, 2)
		async.Dispatch(context.Background(), "panic", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			panic("boom")
		})
		async.Dispatch(context.Background(), "error", func(ctx context.Context) error {
			defer func() { done <- struct{}{} }()
			return errors.New("failed")
		})

		for i := 0; i < 2; i++ {
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("handler was not executed")
			}
		}
	})
}

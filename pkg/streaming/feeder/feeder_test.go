package feeder

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/vnykmshr/bodyflow/internal/testutil"
	bferrors "github.com/vnykmshr/bodyflow/pkg/common/errors"
	"github.com/vnykmshr/bodyflow/pkg/streaming/payload"
)

func TestNewValidation(t *testing.T) {
	sender, _ := payload.New(false)
	src := testutil.NewScriptedReader()

	tests := []struct {
		name    string
		src     io.Reader
		dst     payload.Writer
		config  Config
		wantErr bool
	}{
		{"valid", src, sender, DefaultConfig(), false},
		{"zero read size defaults", src, sender, Config{}, false},
		{"nil source", nil, sender, DefaultConfig(), true},
		{"nil destination", src, nil, DefaultConfig(), true},
		{"negative read size", src, sender, Config{ReadSize: -1}, true},
		{"limiter burst below read size", src, sender, Config{
			ReadSize: 1024,
			Limiter:  rate.NewLimiter(rate.Inf, 16),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithConfig(tt.src, tt.dst, tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWithConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, bferrors.ErrInvalidConfiguration) {
				t.Error("error should wrap ErrInvalidConfiguration")
			}
		})
	}
}

func TestRunFeedsUntilEOF(t *testing.T) {
	sender, body := payload.New(false)
	src := testutil.NewScriptedReader([]byte("first"), []byte("second"))

	f, err := New(src, sender)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertNoError(t, f.Run(ctx))

	r := payload.NewReader(body)
	defer r.Close()
	data, err := io.ReadAll(r)
	testutil.AssertNoError(t, err)
	testutil.AssertBytes(t, data, []byte("firstsecond"))
}

func TestRunRecordsSourceError(t *testing.T) {
	sender, body := payload.New(false)
	boom := errors.New("connection reset")
	src := testutil.NewFailingReader(boom, []byte("partial"))

	f, err := New(src, sender)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertEqual(t, f.Run(ctx), boom)

	// The consumer drains the partial data, then observes the error.
	r := payload.NewReader(body)
	defer r.Close()
	data, err := io.ReadAll(r)
	testutil.AssertEqual(t, err, boom)
	testutil.AssertBytes(t, data, []byte("partial"))
}

func TestRunStopsWhenConsumerDrops(t *testing.T) {
	sender, body := payload.New(false)
	src := testutil.NewScriptedReader([]byte("never read"))

	f, err := New(src, sender)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, body.Close())

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertNoError(t, f.Run(ctx))
	testutil.AssertEqual(t, src.Remaining(), 1)
}

func TestRunPausesOnBackpressure(t *testing.T) {
	sender, body, err := payload.NewWithConfig(payload.Config{Capacity: 4})
	testutil.AssertNoError(t, err)

	var pauses int32
	src := testutil.NewScriptedReader([]byte("aaaa"), []byte("bbbb"))
	f, err := NewWithConfig(src, sender, Config{
		ReadSize: 4,
		OnBackpressure: func() {
			atomic.AddInt32(&pauses, 1)
		},
	})
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- f.Run(ctx)
	}()

	// Give the feeder time to fill the buffer and pause.
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&pauses) == 0 {
		t.Fatal("feeder should have paused on a full buffer")
	}

	// Draining resumes the feeder via the producer waker.
	r := payload.NewReader(body)
	defer r.Close()
	data, err := io.ReadAll(r)
	testutil.AssertNoError(t, err)
	testutil.AssertBytes(t, data, []byte("aaaabbbb"))

	testutil.AssertNoError(t, <-done)
}

func TestRunContextCancellation(t *testing.T) {
	sender, body, err := payload.NewWithConfig(payload.Config{Capacity: 4})
	testutil.AssertNoError(t, err)
	defer body.Close()

	// The single chunk fills the buffer, so the feeder pauses forever.
	src := testutil.NewScriptedReader([]byte("aaaa"), []byte("bbbb"))
	f, err := NewWithConfig(src, sender, Config{ReadSize: 4})
	testutil.AssertNoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	testutil.AssertEqual(t, f.Run(ctx), context.Canceled)
}

func TestRunWithRateLimiter(t *testing.T) {
	sender, body := payload.New(false)
	src := testutil.NewScriptedReader([]byte("abcd"), []byte("efgh"))

	f, err := NewWithConfig(src, sender, Config{
		ReadSize: 4,
		Limiter:  rate.NewLimiter(rate.Inf, 4),
	})
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertNoError(t, f.Run(ctx))

	r := payload.NewReader(body)
	defer r.Close()
	data, err := io.ReadAll(r)
	testutil.AssertNoError(t, err)
	testutil.AssertBytes(t, data, []byte("abcdefgh"))
}

func TestOnFeedHook(t *testing.T) {
	sender, body := payload.New(false)
	defer body.Close()
	src := testutil.NewScriptedReader([]byte("12345"), []byte("678"))

	var fed []int
	f, err := NewWithConfig(src, sender, Config{
		OnFeed: func(n int) {
			fed = append(fed, n)
		},
	})
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertNoError(t, f.Run(ctx))

	testutil.AssertEqual(t, len(fed), 2)
	testutil.AssertEqual(t, fed[0], 5)
	testutil.AssertEqual(t, fed[1], 3)
}

package future

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetReturnsValue(t *testing.T) {
	f := New(func() (int, error) {
		return 42, nil
	})

	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestGetReturnsError(t *testing.T) {
	want := errors.New("boom")
	f := New(func() (int, error) {
		return 0, want
	})

	_, err := f.Get()
	if !errors.Is(err, want) {
		t.Errorf("Get() error = %v, want %v", err, want)
	}
}

func TestGetBlocksUntilResolved(t *testing.T) {
	release := make(chan struct{})
	f := New(func() (int, error) {
		<-release
		return 7, nil
	})

	done := make(chan struct{})
	go func() {
		f.Get()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Get() returned before the future resolved")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Get() never returned after the future resolved")
	}
}

func TestGetContextTimesOut(t *testing.T) {
	f := New(func() (int, error) {
		select {} // never resolves
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.GetContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("GetContext() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestGetContextReturnsValueBeforeDeadline(t *testing.T) {
	f := New(func() (int, error) {
		return 9, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := f.GetContext(ctx)
	if err != nil {
		t.Fatalf("GetContext() error = %v", err)
	}
	if got != 9 {
		t.Errorf("GetContext() = %d, want 9", got)
	}
}

func TestMustGetPanicsOnError(t *testing.T) {
	f := New(func() (int, error) {
		return 0, errors.New("boom")
	})

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGet() did not panic on an errored future")
		}
	}()
	f.MustGet()
}

package sheet

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUploadResolvesOnce(t *testing.T) {
	release := make(chan struct{})
	wb := NewWorkbook("x.csv")
	u := StartUploadWith(context.Background(), "x.csv", func(string) (*Workbook, error) {
		<-release
		return wb, nil
	})
	if u.Peek() != nil {
		t.Fatalf("pending upload should peek as nil")
	}
	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := u.Wait(ctx)
	if err != nil || got != wb {
		t.Fatalf("wait = %v %v", got, err)
	}
	u.resolve(nil, errors.New("late"))
	if u.Peek() != wb {
		t.Fatalf("second resolution must be ignored")
	}
}

func TestUploadFailureYieldsNoWorkbook(t *testing.T) {
	u := StartUploadWith(context.Background(), "bad.xlsx", func(string) (*Workbook, error) {
		return NewWorkbook("partial"), errors.New("corrupt")
	})
	<-u.Done()
	if u.Peek() != nil {
		t.Fatalf("failed upload should not expose a workbook")
	}
	if _, err := u.Wait(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUploadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	block := make(chan struct{})
	defer close(block)
	u := StartUploadWith(ctx, "slow.csv", func(string) (*Workbook, error) {
		<-block
		return nil, nil
	})
	cancel()
	if _, err := u.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNilUpload(t *testing.T) {
	var u *Upload
	<-u.Done()
	if u.Peek() != nil {
		t.Fatalf("nil upload peeks nil")
	}
	if _, err := u.Wait(context.Background()); !errors.Is(err, ErrNoWorkbook) {
		t.Fatalf("expected ErrNoWorkbook, got %v", err)
	}
}

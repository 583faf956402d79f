package sheet

import (
	"context"
	"errors"
	"sync"
)

// ErrNoWorkbook is returned by Upload.Wait when no upload was started.
var ErrNoWorkbook = errors.New("no workbook loaded")

// Upload is a single file parse running off the interaction path. It resolves
// exactly once, with either a workbook or an error; later resolutions are
// ignored. A nil *Upload behaves as "nothing uploaded".
type Upload struct {
	Path string

	once sync.Once
	done chan struct{}
	wb   *Workbook
	err  error
}

// StartUpload begins parsing path in the background with LoadFile.
func StartUpload(ctx context.Context, path string) *Upload {
	return StartUploadWith(ctx, path, LoadFile)
}

// StartUploadWith is StartUpload with an injectable load function.
// Cancelling ctx resolves the upload with ctx.Err() if parsing has not
// finished yet.
func StartUploadWith(ctx context.Context, path string, load func(string) (*Workbook, error)) *Upload {
	u := &Upload{Path: path, done: make(chan struct{})}
	go func() {
		wb, err := load(path)
		u.resolve(wb, err)
	}()
	go func() {
		select {
		case <-ctx.Done():
			u.resolve(nil, ctx.Err())
		case <-u.done:
		}
	}()
	return u
}

func (u *Upload) resolve(wb *Workbook, err error) {
	u.once.Do(func() {
		if err != nil {
			wb = nil
		}
		u.wb, u.err = wb, err
		close(u.done)
	})
}

// Done is closed once the upload has resolved.
func (u *Upload) Done() <-chan struct{} {
	if u == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return u.done
}

// Peek returns the workbook if the upload finished successfully. While
// pending, or after a failure, it returns nil.
func (u *Upload) Peek() *Workbook {
	if u == nil {
		return nil
	}
	select {
	case <-u.done:
		return u.wb
	default:
		return nil
	}
}

// Wait blocks until the upload resolves or ctx is done.
func (u *Upload) Wait(ctx context.Context) (*Workbook, error) {
	if u == nil {
		return nil, ErrNoWorkbook
	}
	select {
	case <-u.done:
		return u.wb, u.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

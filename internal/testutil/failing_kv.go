package testutil

import (
	"context"
	"sync/atomic"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FailingKV wraps a key-value store and injects errors. GetErr, when set,
// is returned from every Get. PutErr is returned from the FailPutOn-th Put
// (counted from 1), or from every Put when FailPutOn is zero.
type FailingKV struct {
	Inner     kvStore
	GetErr    error
	PutErr    error
	FailPutOn int32

	puts atomic.Int32
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, error) {
	if f.GetErr != nil {
		return "", f.GetErr
	}
	return f.Inner.Get(ctx, key)
}

func (f *FailingKV) Put(ctx context.Context, key, value string) error {
	n := f.puts.Add(1)
	if f.PutErr != nil && (f.FailPutOn == 0 || n == f.FailPutOn) {
		return f.PutErr
	}
	return f.Inner.Put(ctx, key, value)
}

func (f *FailingKV) Delete(ctx context.Context, key string) error {
	return f.Inner.Delete(ctx, key)
}

// Puts reports how many Put calls were attempted.
func (f *FailingKV) Puts() int {
	return int(f.puts.Load())
}

// Package pushtest provides an in-memory push provider for tests.
package pushtest

import (
	"context"
	"sync"

	pushModel "jamath_backend/internals/features/notifications/push/model"
)

// FakeSender records every batch and answers from Codes (token -> error
// code); tokens without an entry are delivered.
type FakeSender struct {
	mu      sync.Mutex
	Codes   map[string]string
	Err     error
	Batches [][]pushModel.Message
}

func NewFakeSender() *FakeSender {
	return &FakeSender{Codes: map[string]string{}}
}

func (f *FakeSender) SendEach(_ context.Context, msgs []pushModel.Message) ([]pushModel.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := append([]pushModel.Message(nil), msgs...)
	f.Batches = append(f.Batches, cp)
	if f.Err != nil {
		return nil, f.Err
	}

	out := make([]pushModel.Result, len(msgs))
	for i, m := range msgs {
		if code, ok := f.Codes[m.Token]; ok {
			out[i] = pushModel.Result{ErrorCode: code}
			continue
		}
		out[i] = pushModel.Result{Success: true, MessageID: "msg-" + m.Token}
	}
	return out, nil
}

// Sent flattens all recorded batches.
func (f *FakeSender) Sent() []pushModel.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []pushModel.Message
	for _, b := range f.Batches {
		all = append(all, b...)
	}
	return all
}

// Calls is the number of provider invocations.
func (f *FakeSender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Batches)
}

// FakeDeleter records token deletions.
type FakeDeleter struct {
	mu      sync.Mutex
	Err     error
	Deleted [][]string
}

func (d *FakeDeleter) DeleteByTokens(_ context.Context, tokens []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return d.Err
	}
	d.Deleted = append(d.Deleted, append([]string(nil), tokens...))
	return nil
}

package instrumented

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/store"
	opentracing "github.com/opentracing/opentracing-go"
)

// NewRefs wraps a ref store with tracing spans
func NewRefs(tr opentracing.Tracer, w store.RefStore) store.RefStore {
	return &instrumentedRefs{
		tr: tr,
		w:  w,
	}
}

type instrumentedRefs struct {
	tr opentracing.Tracer
	w  store.RefStore
}

func (i *instrumentedRefs) Initialize() error { return i.w.Initialize() }
func (i *instrumentedRefs) Close() error      { return i.w.Close() }

func (i *instrumentedRefs) SetBranch(ctx context.Context, name, commitID string) (err error) {
	traced(ctx, i.tr, "set branch "+name, func() { err = i.w.SetBranch(ctx, name, commitID) })
	return
}
func (i *instrumentedRefs) GetBranch(ctx context.Context, name string) (id string, err error) {
	traced(ctx, i.tr, "get branch "+name, func() { id, err = i.w.GetBranch(ctx, name) })
	return
}
func (i *instrumentedRefs) DeleteBranch(ctx context.Context, name string) (err error) {
	traced(ctx, i.tr, "delete branch "+name, func() { err = i.w.DeleteBranch(ctx, name) })
	return
}
func (i *instrumentedRefs) ListBranches(ctx context.Context) (result []string, err error) {
	traced(ctx, i.tr, "list branches", func() { result, err = i.w.ListBranches(ctx) })
	return
}
func (i *instrumentedRefs) Head(ctx context.Context) (branch string, err error) {
	traced(ctx, i.tr, "get head", func() { branch, err = i.w.Head(ctx) })
	return
}
func (i *instrumentedRefs) SetHead(ctx context.Context, branch string) (err error) {
	traced(ctx, i.tr, "set head "+branch, func() { err = i.w.SetHead(ctx, branch) })
	return
}
func (i *instrumentedRefs) Setting(ctx context.Context, key string) (value string, err error) {
	traced(ctx, i.tr, "get setting "+key, func() { value, err = i.w.Setting(ctx, key) })
	return
}
func (i *instrumentedRefs) SetSetting(ctx context.Context, key, value string) (err error) {
	traced(ctx, i.tr, "set setting "+key, func() { err = i.w.SetSetting(ctx, key, value) })
	return
}

package instrumented

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	opentracing "github.com/opentracing/opentracing-go"
)

// NewStageMeta wraps a staging index store with tracing spans
func NewStageMeta(tr opentracing.Tracer, w store.StageMeta) store.StageMeta {
	return &instrumentedStage{
		tr: tr,
		w:  w,
	}
}

type instrumentedStage struct {
	tr opentracing.Tracer
	w  store.StageMeta
}

func (i *instrumentedStage) Initialize() error { return i.w.Initialize() }
func (i *instrumentedStage) Close() error      { return i.w.Close() }

func (i *instrumentedStage) Add(ctx context.Context, entry model.Entry) (err error) {
	traced(ctx, i.tr, "add to stage "+entry.Path, func() { err = i.w.Add(ctx, entry) })
	return
}
func (i *instrumentedStage) Unadd(ctx context.Context, path string) (err error) {
	traced(ctx, i.tr, "unstage addition "+path, func() { err = i.w.Unadd(ctx, path) })
	return
}
func (i *instrumentedStage) MarkRemove(ctx context.Context, entry model.Entry) (err error) {
	traced(ctx, i.tr, "mark removed on stage "+entry.Path, func() { err = i.w.MarkRemove(ctx, entry) })
	return
}
func (i *instrumentedStage) Unremove(ctx context.Context, path string) (err error) {
	traced(ctx, i.tr, "unstage removal "+path, func() { err = i.w.Unremove(ctx, path) })
	return
}
func (i *instrumentedStage) Added(ctx context.Context, path string) (hash string, ok bool, err error) {
	traced(ctx, i.tr, "stage addition for "+path, func() { hash, ok, err = i.w.Added(ctx, path) })
	return
}
func (i *instrumentedStage) Removed(ctx context.Context, path string) (hash string, ok bool, err error) {
	traced(ctx, i.tr, "stage removal for "+path, func() { hash, ok, err = i.w.Removed(ctx, path) })
	return
}
func (i *instrumentedStage) List(ctx context.Context) (result model.ChangeSet, err error) {
	traced(ctx, i.tr, "list stage", func() { result, err = i.w.List(ctx) })
	return
}
func (i *instrumentedStage) IsClean(ctx context.Context) (clean bool, err error) {
	traced(ctx, i.tr, "stage is clean", func() { clean, err = i.w.IsClean(ctx) })
	return
}
func (i *instrumentedStage) Clear(ctx context.Context) (err error) {
	traced(ctx, i.tr, "clear stage", func() { err = i.w.Clear(ctx) })
	return
}

package blob

import (
	"context"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
)

// Instrument a store with opentracing spans, tagged with the key of the blob.
//
// When no tracer is provided, the global tracer is used.
func Instrument(tr opentracing.Tracer, store Store) Store {
	if tr == nil {
		tr = opentracing.GlobalTracer()
	}
	return &instrumentedStore{
		tr:    tr,
		store: store,
	}
}

type instrumentedStore struct {
	store Store
	tr    opentracing.Tracer
}

// start a span as a child of the span of ctx, if any
func (i *instrumentedStore) start(ctx context.Context, op, key string) opentracing.Span {
	var opts []opentracing.StartSpanOption
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := i.tr.StartSpan("blob."+op, opts...)
	span.SetTag("store", i.store.String())
	if key != "" {
		span.SetTag("key", key)
	}
	return span
}

// finish a span, flagging it when the operation failed. A missing key is not a failure.
func finish(span opentracing.Span, err error) {
	if err != nil && err != ErrNotFound {
		ext.Error.Set(span, true)
		span.LogFields(otlog.Error(err))
	}
	span.Finish()
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (has bool, err error) {
	span := i.start(ctx, "has", key)
	defer func() { finish(span, err) }()
	return i.store.Has(ctx, key)
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (rdr io.ReadCloser, err error) {
	span := i.start(ctx, "get", key)
	defer func() { finish(span, err) }()
	return i.store.Get(ctx, key)
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader) (err error) {
	span := i.start(ctx, "put", key)
	defer func() { finish(span, err) }()
	return i.store.Put(ctx, key, rdr)
}

func (i *instrumentedStore) Keys(ctx context.Context) (keys []string, err error) {
	span := i.start(ctx, "keys", "")
	defer func() {
		span.SetTag("count", len(keys))
		finish(span, err)
	}()
	return i.store.Keys(ctx)
}

func (i *instrumentedStore) Clear(ctx context.Context) (err error) {
	span := i.start(ctx, "clear", "")
	defer func() { finish(span, err) }()
	return i.store.Clear(ctx)
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}

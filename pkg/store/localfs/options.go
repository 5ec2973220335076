package localfs

import (
	"github.com/oneconcern/gitlet/pkg/fingerprint"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
)

// Option for the local stores
type Option func(*options)

type options struct {
	fs           afero.Fs
	tracer       opentracing.Tracer
	hasher       *fingerprint.Maker
	valueLogSize int64
}

func defaultOptions(opts []Option) options {
	o := options{
		fs: afero.NewOsFs(),
	}
	for _, apply := range opts {
		apply(&o)
	}
	if o.hasher == nil {
		o.hasher = fingerprint.New()
	}
	return o
}

// FileSystem to store objects into, defaults to the OS file system
func FileSystem(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// Tracer for the object stores, defaults to the global tracer
func Tracer(tr opentracing.Tracer) Option {
	return func(o *options) {
		o.tracer = tr
	}
}

// Hasher computes the hashes of blobs
func Hasher(h *fingerprint.Maker) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// ValueLogSize bounds the size of badger value log files
func ValueLogSize(sz int64) Option {
	return func(o *options) {
		o.valueLogSize = sz
	}
}

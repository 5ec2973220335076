package engine

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oneconcern/gitlet/pkg/blob"
	bloblocalfs "github.com/oneconcern/gitlet/pkg/blob/localfs"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/errors"
	"github.com/oneconcern/gitlet/pkg/fingerprint"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/oneconcern/gitlet/pkg/store"
	"github.com/oneconcern/gitlet/pkg/store/instrumented"
	"github.com/oneconcern/gitlet/pkg/store/localfs"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	stageDir   = "stage"
	objectsDir = "objects"
)

// Options to open a repository
type Options struct {
	Config Config

	// Workspace is the working directory, defaults to the current directory of the OS file system
	Workspace afero.Fs

	// MetaDir is the OS directory holding the badger databases, defaults to the repository directory
	MetaDir string

	Logger *zap.Logger
	Tracer opentracing.Tracer

	// Now is the clock used to timestamp commits
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Config.RepoDir == "" {
		o.Config.RepoDir = DefaultRepoDir
	}
	if o.Workspace == nil {
		o.Workspace = afero.NewOsFs()
	}
	if o.MetaDir == "" {
		o.MetaDir = o.Config.RepoDir
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Tracer == nil {
		o.Tracer = opentracing.GlobalTracer()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Repo is the repository context every operation goes through
type Repo struct {
	l       *zap.Logger
	now     func() time.Time
	ws      *Workspace
	objects store.ObjectStore
	refs    store.RefStore
	stage   *Stage
}

// Init creates a new repository in the workspace.
//
// The repository starts with the root commit, a master branch pointing at it, and HEAD on master.
func Init(ctx context.Context, opts Options) (*Repo, error) {
	opts = opts.withDefaults()
	exists, err := afero.DirExists(opts.Workspace, opts.Config.RepoDir)
	if err != nil {
		return nil, status.ErrCorrupted.Wrap(err)
	}
	if exists {
		return nil, status.ErrAlreadyInitialized
	}
	if err = opts.Workspace.MkdirAll(opts.Config.RepoDir, 0700); err != nil {
		return nil, status.ErrCorrupted.Wrap(err)
	}

	r, err := open(ctx, opts)
	if err != nil {
		return nil, err
	}

	root, err := model.RootCommit()
	if err != nil {
		return nil, r.closeWith(err)
	}
	if _, err = r.objects.PutCommit(ctx, root); err != nil {
		return nil, r.closeWith(err)
	}
	if err = r.refs.SetBranch(ctx, DefaultBranch, root.ID); err != nil {
		return nil, r.closeWith(err)
	}
	if err = r.refs.SetHead(ctx, DefaultBranch); err != nil {
		return nil, r.closeWith(err)
	}
	r.l.Info("repository initialized", zap.String("dir", opts.Config.RepoDir), zap.String("root", root.ID))
	return r, nil
}

// Open an existing repository
func Open(ctx context.Context, opts Options) (*Repo, error) {
	opts = opts.withDefaults()
	exists, err := afero.DirExists(opts.Workspace, opts.Config.RepoDir)
	if err != nil {
		return nil, status.ErrCorrupted.Wrap(err)
	}
	if !exists {
		return nil, status.ErrNotInitialized
	}

	r, err := open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if _, err := r.refs.Head(ctx); err != nil {
		if err == store.HeadNotFound {
			return nil, r.closeWith(status.ErrNotInitialized)
		}
		return nil, r.closeWith(err)
	}
	return r, nil
}

func open(ctx context.Context, opts Options) (*Repo, error) {
	cfg := opts.Config
	l := opts.Logger

	valueLogSize, err := cfg.ValueLogSize()
	if err != nil {
		return nil, err
	}

	refs := instrumented.NewRefs(opts.Tracer, localfs.NewRefs(opts.MetaDir, localfs.ValueLogSize(valueLogSize)))
	if err = refs.Initialize(); err != nil {
		return nil, status.ErrCorrupted.WrapWithLog(l, err)
	}

	leafSize, err := recordedLeafSize(ctx, refs, cfg, l)
	if err != nil {
		return nil, multierr.Append(status.ErrCorrupted.WrapWithLog(l, err), refs.Close())
	}
	hasher := fingerprint.New(fingerprint.LeafSize(leafSize))
	l.Debug("opening repository", zap.String("dir", cfg.RepoDir), zap.Uint32("leaf_size", hasher.LeafSize()))

	meta := instrumented.NewStageMeta(opts.Tracer, localfs.NewStageMeta(filepath.Join(opts.MetaDir, stageDir), localfs.ValueLogSize(valueLogSize)))
	if err = meta.Initialize(); err != nil {
		return nil, multierr.Append(status.ErrCorrupted.WrapWithLog(l, err), refs.Close())
	}

	objects := localfs.NewObjectStore(cfg.RepoDir,
		localfs.FileSystem(opts.Workspace),
		localfs.Tracer(opts.Tracer),
		localfs.Hasher(hasher),
	)
	if err = objects.Initialize(); err != nil {
		return nil, multierr.Combine(status.ErrCorrupted.WrapWithLog(l, err), meta.Close(), refs.Close())
	}

	stageBlobs := afero.NewBasePathFs(opts.Workspace, filepath.Join(cfg.RepoDir, stageDir, objectsDir))

	return &Repo{
		l:       l,
		now:     opts.Now,
		ws:      newWorkspace(opts.Workspace, cfg.RepoDir, hasher),
		objects: objects,
		refs:    refs,
		stage: &Stage{
			l:     l,
			meta:  meta,
			blobs: blob.Instrument(opts.Tracer, bloblocalfs.New(stageBlobs)),
		},
	}, nil
}

// recordedLeafSize is the leaf size the repository was initialized with.
//
// Blob hashes depend on the leaf size, so a repository keeps hashing with the one it was created with.
func recordedLeafSize(ctx context.Context, refs store.RefStore, cfg Config, l *zap.Logger) (int64, error) {
	configured, err := cfg.LeafSize()
	if err != nil {
		return 0, err
	}

	recorded, err := refs.Setting(ctx, leafSizeSetting)
	switch err {
	case nil:
		sz, perr := strconv.ParseInt(recorded, 10, 64)
		if perr != nil {
			return 0, perr
		}
		if sz != configured {
			l.Warn("ignoring configured leaf size, using the one the repository was initialized with",
				zap.Int64("configured", configured), zap.Int64("recorded", sz))
		}
		return sz, nil
	case store.SettingNotFound:
		if serr := refs.SetSetting(ctx, leafSizeSetting, strconv.FormatInt(configured, 10)); serr != nil {
			return 0, serr
		}
		return configured, nil
	default:
		return 0, err
	}
}

// Close the repository
func (r *Repo) Close() error {
	return multierr.Combine(
		r.stage.Close(),
		r.refs.Close(),
		r.objects.Close(),
	)
}

func (r *Repo) closeWith(err error) error {
	return multierr.Append(r.corrupted(err), r.Close())
}

// Logger of the repository
func (r *Repo) Logger() *zap.Logger {
	return r.l
}

// Stage of the repository
func (r *Repo) Stage() *Stage {
	return r.stage
}

// HashObject computes the blob hash of a working file without storing it
func (r *Repo) HashObject(ctx context.Context, pth string) (string, error) {
	p, ok := r.ws.Clean(pth)
	if !ok {
		return "", status.ErrFileNotFound
	}
	hash, exists, err := r.ws.Hash(p)
	if err != nil {
		return "", r.corrupted(err)
	}
	if !exists {
		return "", status.ErrFileNotFound
	}
	return hash, nil
}

// corrupted turns unexpected failures into a repository failure, leaving engine errors untouched
func (r *Repo) corrupted(err error) error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	if errors.As(err, &e) {
		return err
	}
	return status.ErrCorrupted.WrapWithLog(r.l, err)
}

package store

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/model"
)

type errorString string

func (e errorString) Error() string {
	return string(e)
}

const (
	// NameIsRequired error whenever a name is expected but not provided
	NameIsRequired errorString = "name is required"

	// ObjectNotFound when a blob or a commit is not found
	ObjectNotFound errorString = "object not found"

	// BranchNotFound when a branch is not found
	BranchNotFound errorString = "branch not found"

	// HeadNotFound when the HEAD record is missing
	HeadNotFound errorString = "head not found"

	// SettingNotFound when a repository setting is not found
	SettingNotFound errorString = "setting not found"

	// AmbiguousID is returned when an abbreviated commit id matches more than one commit
	AmbiguousID errorString = "ambiguous commit id"

	// Corrupted is returned when a stored object does not match its id
	Corrupted errorString = "corrupted object"
)

// An ObjectStore manages the content addressed persistence of blobs and commits.
//
// Writes are idempotent: writing an object that already exists is a no-op.
type ObjectStore interface {
	Initialize() error
	Close() error

	HashBlob([]byte) (string, error)
	PutBlob(context.Context, []byte) (string, error)
	GetBlob(context.Context, string) ([]byte, error)
	HasBlob(context.Context, string) (bool, error)

	PutCommit(context.Context, *model.Commit) (string, error)
	GetCommit(context.Context, string) (*model.Commit, error)
	HasCommit(context.Context, string) (bool, error)
	CommitIDs(context.Context) ([]string, error)
	ResolveShortID(context.Context, string) (string, error)
}

// A RefStore manages the branches, the HEAD record and a few repository wide settings
type RefStore interface {
	Initialize() error
	Close() error

	SetBranch(ctx context.Context, name, commitID string) error
	GetBranch(ctx context.Context, name string) (string, error)
	DeleteBranch(ctx context.Context, name string) error
	ListBranches(ctx context.Context) ([]string, error)

	Head(context.Context) (string, error)
	SetHead(ctx context.Context, branch string) error

	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// An StageMeta store manages the pending additions and removals of the staging index
type StageMeta interface {
	Initialize() error
	Close() error

	Add(context.Context, model.Entry) error
	Unadd(context.Context, string) error
	MarkRemove(context.Context, model.Entry) error
	Unremove(context.Context, string) error

	Added(context.Context, string) (string, bool, error)
	Removed(context.Context, string) (string, bool, error)
	List(context.Context) (model.ChangeSet, error)
	IsClean(context.Context) (bool, error)
	Clear(context.Context) error
}

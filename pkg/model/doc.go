// Package model describes the base objects manipulated by gitlet.
//
// The object model for gitlet is composed of:
//
//  Blobs:
//    The immutable content of a tracked file, addressed by the hash of its bytes.
//
//  Manifests:
//    An ordered mapping from repository relative paths to blob hashes.
//    A manifest is the full file tree tracked by a commit.
//
//  Commits:
//    An immutable snapshot of a manifest, with a message, a timestamp and up to two parents.
//    The commit id is derived from its message, parents and manifest only,
//    so that identical logical commits always get the same id.
//
//  Change sets:
//    The pending additions and removals recorded by the staging index, folded into
//    the parent manifest at commit time.
package model

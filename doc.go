/*
Package gitlet provides a small, local version control system.

Gitlet records snapshots of the files of a working directory as commits. Commits form a history
graph where each commit has one parent, or two when it results from a merge. Branches are named
pointers into this graph, and HEAD designates the branch that new commits extend.

File contents and commits are content addressed: they are stored once under the hash of their
serialized form in the .gitlet directory at the root of the working directory.

Typical usage:

	gitlet init
	gitlet add notes.txt
	gitlet commit "first notes"
	gitlet branch experiment
	gitlet checkout experiment
	gitlet merge master

See cmd/gitlet for the command line and pkg/engine for the repository operations.
*/
package gitlet

package engine

import (
	"context"
	"sort"
)

// FileState of a file with changes not staged for commit
type FileState string

const (
	// Modified file content differs from its tracked or staged version
	Modified FileState = "modified"

	// Deleted file is tracked or staged, but no longer in the working directory
	Deleted FileState = "deleted"
)

// FileChange is a change not staged for commit
type FileChange struct {
	Path  string    `json:"path" yaml:"path"`
	State FileState `json:"state" yaml:"state"`
}

// RepoStatus summarizes the branches, the stage and the working directory.
//
// All lists are sorted.
type RepoStatus struct {
	Current   string       `json:"current" yaml:"current"`
	Branches  []string     `json:"branches" yaml:"branches"`
	Staged    []string     `json:"staged" yaml:"staged"`
	Removed   []string     `json:"removed" yaml:"removed"`
	Modified  []FileChange `json:"modified" yaml:"modified"`
	Untracked []string     `json:"untracked" yaml:"untracked"`
}

// Status of the repository
func (r *Repo) Status(ctx context.Context) (RepoStatus, error) {
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return RepoStatus{}, err
	}
	branches, err := r.Branches(ctx)
	if err != nil {
		return RepoStatus{}, err
	}
	head, err := r.BranchCommit(ctx, current)
	if err != nil {
		return RepoStatus{}, err
	}
	cs, err := r.stage.Status(ctx)
	if err != nil {
		return RepoStatus{}, r.corrupted(err)
	}
	files, err := r.ws.Files()
	if err != nil {
		return RepoStatus{}, r.corrupted(err)
	}

	st := RepoStatus{
		Current:   current,
		Branches:  branches,
		Staged:    cs.Added.Paths(),
		Removed:   cs.Removed.Paths(),
		Modified:  []FileChange{},
		Untracked: []string{},
	}

	present := make(map[string]struct{}, len(files))
	for _, f := range files {
		present[f] = struct{}{}
	}

	// compare the working directory with what the next commit would record
	var herr error
	check := func(p, expected string) bool {
		if _, ok := present[p]; !ok {
			st.Modified = append(st.Modified, FileChange{Path: p, State: Deleted})
			return true
		}
		hash, _, err := r.ws.Hash(p)
		if err != nil {
			herr = err
			return false
		}
		if hash != expected {
			st.Modified = append(st.Modified, FileChange{Path: p, State: Modified})
		}
		return true
	}

	cs.Added.Walk(check)
	if herr != nil {
		return RepoStatus{}, r.corrupted(herr)
	}
	head.Manifest.Walk(func(p, hash string) bool {
		if cs.Added.Has(p) || cs.Removed.Has(p) {
			return true
		}
		return check(p, hash)
	})
	if herr != nil {
		return RepoStatus{}, r.corrupted(herr)
	}
	sort.Slice(st.Modified, func(i, j int) bool { return st.Modified[i].Path < st.Modified[j].Path })

	for _, f := range files {
		if cs.Added.Has(f) {
			continue
		}
		if head.Manifest.Has(f) && !cs.Removed.Has(f) {
			continue
		}
		st.Untracked = append(st.Untracked, f)
	}
	return st, nil
}

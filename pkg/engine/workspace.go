package engine

import (
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/gitlet/pkg/fingerprint"
	"github.com/spf13/afero"
)

// Workspace gives access to the files of the working directory.
//
// Paths are slash separated and relative to the root of the working directory.
// The repository directory is never part of the workspace.
type Workspace struct {
	fs      afero.Fs
	repoDir string
	hasher  *fingerprint.Maker
}

func newWorkspace(fs afero.Fs, repoDir string, hasher *fingerprint.Maker) *Workspace {
	return &Workspace{
		fs:      fs,
		repoDir: path.Clean(filepath.ToSlash(repoDir)),
		hasher:  hasher,
	}
}

// Clean a user provided path into a workspace path.
//
// It returns false for paths outside of the workspace or inside the repository directory.
func (w *Workspace) Clean(pth string) (string, bool) {
	p := path.Clean(filepath.ToSlash(pth))
	p = strings.TrimPrefix(p, "./")
	if p == "." || p == "/" || p == ".." || strings.HasPrefix(p, "../") || path.IsAbs(p) {
		return "", false
	}
	if p == w.repoDir || strings.HasPrefix(p, w.repoDir+"/") {
		return "", false
	}
	return p, true
}

// Exists is true when pth is a regular file
func (w *Workspace) Exists(pth string) (bool, error) {
	fi, err := w.fs.Stat(filepath.FromSlash(pth))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !fi.IsDir(), nil
}

// Read the content of a file
func (w *Workspace) Read(pth string) ([]byte, error) {
	return afero.ReadFile(w.fs, filepath.FromSlash(pth))
}

// Write a file, creating its parent directories when needed
func (w *Workspace) Write(pth string, data []byte) error {
	native := filepath.FromSlash(pth)
	if dir := filepath.Dir(native); dir != "." {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return afero.WriteFile(w.fs, native, data, 0644)
}

// Delete a file, it is not an error when the file does not exist
func (w *Workspace) Delete(pth string) error {
	if err := w.fs.Remove(filepath.FromSlash(pth)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Hash the content of a file, the boolean is false when the file does not exist.
//
// The file is streamed through the hasher rather than loaded in memory.
func (w *Workspace) Hash(pth string) (string, bool, error) {
	f, err := w.fs.Open(filepath.FromSlash(pth))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	digest, err := w.hasher.Process(f)
	if err != nil {
		return "", false, err
	}
	return hex.EncodeToString(digest), true, nil
}

// Files lists all the regular files of the workspace, sorted
func (w *Workspace) Files() ([]string, error) {
	var result []string
	err := afero.Walk(w.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		slashed := filepath.ToSlash(p)
		if info.IsDir() {
			if slashed == w.repoDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		result = append(result, strings.TrimPrefix(slashed, "./"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(result)
	return result, nil
}

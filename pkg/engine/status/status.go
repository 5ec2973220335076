// Package status declares the errors returned by the engine.
//
// The user facing errors carry a stable message, which is printed as is by the command line.
// NOTE: such constants are located in a separate package so that callers
// may check errors without depending on the engine and its stores.
package status

import "github.com/oneconcern/gitlet/pkg/errors"

var (
	// ErrNotInitialized is returned when no repository exists in the working directory
	ErrNotInitialized = errors.New("Not in an initialized Gitlet directory.")

	// ErrAlreadyInitialized is returned when initializing over an existing repository
	ErrAlreadyInitialized = errors.New("A Gitlet version-control system already exists in the current directory.")

	// ErrEmptyMessage is returned when committing with a blank message
	ErrEmptyMessage = errors.New("Please enter a commit message.")

	// ErrNothingToCommit is returned when committing without any staged change
	ErrNothingToCommit = errors.New("No changes added to the commit.")

	// ErrFileNotFound is returned when staging a file that is not in the working directory
	ErrFileNotFound = errors.New("File does not exist.")

	// ErrNothingToRemove is returned when removing a file which is neither staged nor tracked
	ErrNothingToRemove = errors.New("No reason to remove the file.")

	// ErrFileNotInCommit is returned when checking out a file a commit does not track
	ErrFileNotInCommit = errors.New("File does not exist in that commit.")

	// ErrNoSuchCommit is returned when a commit id does not resolve to any commit
	ErrNoSuchCommit = errors.New("No commit with that id exists.")

	// ErrNoSuchBranch is returned when checking out an unknown branch
	ErrNoSuchBranch = errors.New("No such branch exists.")

	// ErrBranchNotFound is returned when removing or merging an unknown branch
	ErrBranchNotFound = errors.New("A branch with that name does not exist.")

	// ErrBranchExists is returned when creating a branch that already exists
	ErrBranchExists = errors.New("A branch with that name already exists.")

	// ErrRemoveCurrentBranch is returned when removing the branch HEAD points to
	ErrRemoveCurrentBranch = errors.New("Cannot remove the current branch.")

	// ErrCheckoutCurrentBranch is returned when checking out the branch HEAD points to
	ErrCheckoutCurrentBranch = errors.New("No need to checkout the current branch.")

	// ErrUntrackedInTheWay is returned when a checkout, reset or merge would overwrite an untracked file
	ErrUntrackedInTheWay = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")

	// ErrUncommittedChanges is returned when merging with a non empty staging index
	ErrUncommittedChanges = errors.New("You have uncommitted changes.")

	// ErrMergeWithSelf is returned when merging the current branch into itself
	ErrMergeWithSelf = errors.New("Cannot merge a branch with itself.")

	// ErrNoCommitWithMessage is returned when no commit has the searched message
	ErrNoCommitWithMessage = errors.New("Found no commit with that message.")

	// ErrIncorrectOperands is returned for malformed command arguments
	ErrIncorrectOperands = errors.New("Incorrect operands.")

	// ErrNoCommand is returned when the command line has no command
	ErrNoCommand = errors.New("Please enter a command.")

	// ErrNoSuchCommand is returned for an unknown command
	ErrNoSuchCommand = errors.New("No command with that name exists.")

	// ErrCorrupted wraps any failure to read or write the repository
	ErrCorrupted = errors.New("repository is corrupted")
)

var userErrors = []*errors.Error{
	ErrNotInitialized,
	ErrAlreadyInitialized,
	ErrEmptyMessage,
	ErrNothingToCommit,
	ErrFileNotFound,
	ErrNothingToRemove,
	ErrFileNotInCommit,
	ErrNoSuchCommit,
	ErrNoSuchBranch,
	ErrBranchNotFound,
	ErrBranchExists,
	ErrRemoveCurrentBranch,
	ErrCheckoutCurrentBranch,
	ErrUntrackedInTheWay,
	ErrUncommittedChanges,
	ErrMergeWithSelf,
	ErrNoCommitWithMessage,
	ErrIncorrectOperands,
	ErrNoCommand,
	ErrNoSuchCommand,
}

// IsUserError tells if an error is an expected outcome of a command, as opposed to a repository failure
func IsUserError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package engine

import (
	units "github.com/docker/go-units"
	"github.com/oneconcern/gitlet/pkg/fingerprint"
	"github.com/pkg/errors"
)

const (
	// DefaultRepoDir is the name of the directory holding the repository in the working directory
	DefaultRepoDir = ".gitlet"

	// DefaultBranch is the branch created when initializing a repository
	DefaultBranch = "master"

	leafSizeSetting = "hash.leaf_size"
)

// HashConfig configures content hashing
type HashConfig struct {
	LeafSize string `mapstructure:"leaf_size" json:"leaf_size,omitempty" yaml:"leaf_size,omitempty"`
}

// IndexConfig configures the badger databases holding refs and the staging index
type IndexConfig struct {
	ValueLogSize string `mapstructure:"value_log_size" json:"value_log_size,omitempty" yaml:"value_log_size,omitempty"`
}

// Config for a repository
type Config struct {
	RepoDir  string      `mapstructure:"repo_dir" json:"repo_dir,omitempty" yaml:"repo_dir,omitempty"`
	LogLevel string      `mapstructure:"log_level" json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Hash     HashConfig  `mapstructure:"hash" json:"hash,omitempty" yaml:"hash,omitempty"`
	Index    IndexConfig `mapstructure:"index" json:"index,omitempty" yaml:"index,omitempty"`
	Color    bool        `mapstructure:"color" json:"color" yaml:"color"`
}

// DefaultConfig for a repository
func DefaultConfig() Config {
	return Config{
		RepoDir:  DefaultRepoDir,
		LogLevel: "error",
		Hash: HashConfig{
			LeafSize: "5MiB",
		},
		Index: IndexConfig{
			ValueLogSize: "64MiB",
		},
		Color: true,
	}
}

// LeafSize in bytes used to hash blobs
func (c Config) LeafSize() (int64, error) {
	if c.Hash.LeafSize == "" {
		return fingerprint.DefaultLeafSize, nil
	}
	sz, err := units.RAMInBytes(c.Hash.LeafSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid hash.leaf_size %q", c.Hash.LeafSize)
	}
	if sz <= 0 || sz > 1<<32-1 {
		return 0, errors.Errorf("hash.leaf_size %q is out of range", c.Hash.LeafSize)
	}
	return sz, nil
}

// ValueLogSize in bytes of the badger value log files
func (c Config) ValueLogSize() (int64, error) {
	if c.Index.ValueLogSize == "" {
		return 0, nil
	}
	sz, err := units.RAMInBytes(c.Index.ValueLogSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid index.value_log_size %q", c.Index.ValueLogSize)
	}
	if sz < units.MiB || sz > 2*units.GiB {
		return 0, errors.Errorf("index.value_log_size %q must be between 1MiB and 2GiB", c.Index.ValueLogSize)
	}
	return sz, nil
}

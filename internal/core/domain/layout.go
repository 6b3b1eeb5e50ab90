package domain

import (
	"path/filepath"
	"time"
)

const (
	// EnvspecDirName is the name of the internal state directory.
	EnvspecDirName = ".envspec"

	// StoreDirName is the name of the report store directory.
	StoreDirName = "store"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ChannelsDirName is the name of the channel index cache directory.
	ChannelsDirName = "channels"

	// DescriptorFileName is the conventional name of the environment descriptor.
	DescriptorFileName = "environment.yml"

	// AltDescriptorFileName is the alternative spelling of the descriptor name.
	AltDescriptorFileName = "environment.yaml"

	// SettingsFileName is the name of the optional tool settings file.
	SettingsFileName = "envspec.yaml"

	// EnvFileName is the dotenv file read for ENVSPEC_* overrides.
	EnvFileName = ".env"

	// DefaultIndexURL is the base URL of the anaconda.org package API.
	DefaultIndexURL = "https://api.anaconda.org/package"

	// DefaultIndexTTL is how long a cached channel index response stays fresh.
	DefaultIndexTTL = 24 * time.Hour

	// DefaultParallelism bounds concurrent channel lookups.
	DefaultParallelism = 8

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DescriptorFileNames lists the descriptor names searched for during discovery, in order.
func DescriptorFileNames() []string {
	return []string{DescriptorFileName, AltDescriptorFileName}
}

// DefaultEnvspecPath returns the default root directory for envspec state.
func DefaultEnvspecPath() string {
	return EnvspecDirName
}

// DefaultStorePath returns the default path for the report store.
// It joins .envspec and store.
func DefaultStorePath() string {
	return filepath.Join(EnvspecDirName, StoreDirName)
}

// DefaultChannelCachePath returns the default path for the channel index cache.
// It joins .envspec, cache, and channels.
func DefaultChannelCachePath() string {
	return filepath.Join(EnvspecDirName, CacheDirName, ChannelsDirName)
}

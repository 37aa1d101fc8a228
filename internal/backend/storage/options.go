package storage

import "os"

// Options configures FileStore behavior.
type Options struct {
	FileMode os.FileMode // Permission bits for written files
	DirMode  os.FileMode // Permission bits for the root directory
}

// OptionFunc is a functional option for configuring a FileStore.
type OptionFunc func(opts *Options)

var defaultOpts = Options{
	FileMode: 0644,
	DirMode:  0755,
}

// WithFileMode sets the permission mode for written files. Default is 0644.
func WithFileMode(mode os.FileMode) OptionFunc {
	return func(opts *Options) {
		opts.FileMode = mode
	}
}

// WithDirMode sets the permission mode used when creating the root directory. Default is 0755.
func WithDirMode(mode os.FileMode) OptionFunc {
	return func(opts *Options) {
		opts.DirMode = mode
	}
}

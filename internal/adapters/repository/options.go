package repository

import "os"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFilePerm sets the permission bits for the written artifact file.
func WithFilePerm(perm os.FileMode) Option {
	return func(s *FileStore) {
		if perm != 0 {
			s.filePerm = perm
		}
	}
}

// WithDirPerm sets the permission bits for created parent directories.
func WithDirPerm(perm os.FileMode) Option {
	return func(s *FileStore) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// WithIndent sets the JSON indentation. An empty string produces compact
// output.
func WithIndent(indent string) Option {
	return func(s *FileStore) {
		s.indent = indent
	}
}

package ports

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// WriteFileAtomic writes data to a temporary sibling of path and renames
	// it into place, so readers never observe a partial file. The temporary
	// file is removed when any step fails.
	WriteFileAtomic(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}

package provision

import "os"

// FS is the file-system capability the engine writes through. Names are
// relative to the project directory and use forward slashes.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(name string, perm os.FileMode) error
	Chmod(name string, mode os.FileMode) error
}

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

package hostutil

import (
	"os"
	"path/filepath"
)

// FindWDFile looks for name in the working directory and then in each of its
// parents. It returns the file's info and absolute path; both are zero, with
// a nil error, when no directory holds the file.
func FindWDFile(name string) (os.FileInfo, string, error) {
	if info, err := os.Stat(name); err == nil {
		path, err := filepath.Abs(name)
		return info, path, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil {
			return info, path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return nil, "", nil
		}
		wd = parent
	}
}

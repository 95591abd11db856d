package utils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CreateFile will create a file at the given path and file name combination. If the path is the empty string, the
// file will be created in the current working directory
func CreateFile(path string, fileName string) (*os.File, error) {
	filePath := fileName
	if path != "" {
		if err := MakeDirectory(path); err != nil {
			return nil, err
		}
		filePath = filepath.Join(path, fileName)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return file, nil
}

// MakeDirectory creates a directory at the given path, including any parents. Returns an error if the path exists but
// is not a directory.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil && !os.IsNotExist(err) {
		return errors.WithStack(err)
	}

	if os.IsNotExist(err) {
		if err = os.MkdirAll(dirToMake, 0755); err != nil {
			return errors.WithStack(err)
		}
		return nil
	}

	if !dirInfo.IsDir() {
		return errors.Errorf("%s is not a directory", dirToMake)
	}
	return nil
}

// FileExists returns whether a regular file or directory exists at the given path.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.WithStack(err)
}

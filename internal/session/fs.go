package session

import "os"

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (osFileSystem) WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/advanced-http/internal/constants"
)

// file is the on-disk layout of a session.
type file struct {
	// Cookies maps an origin to its raw cookie string.
	Cookies map[string]string `yaml:"cookies"`
}

// Load reads the cookies stored at path. A missing file is an empty session.
func Load(fsys afero.Fs, path string) (map[string]string, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored file
	if err = yaml.Unmarshal(content, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	if stored.Cookies == nil {
		stored.Cookies = map[string]string{}
	}

	return stored.Cookies, nil
}

// Save writes cookies to path, creating its folder when needed.
func Save(fsys afero.Fs, path string, cookies map[string]string) error {
	if cookies == nil {
		cookies = map[string]string{}
	}

	content, err := yaml.Marshal(file{Cookies: cookies})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = fsys.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create session folder: %w", err)
		}
	}

	if err = afero.WriteFile(fsys, path, content, constants.PrivateFilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

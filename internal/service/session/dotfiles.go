package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cs50/cli50/internal/i18n"
)

// containerHome is the home directory of the container's default user,
// where dotfiles are mounted read-only.
const containerHome = "/home/ubuntu"

// DotfileVolumes turns dotfile names into read-only --volume specs.
// Each dotfile must resolve to a path under home, exist, and have a
// relative path starting with a dot. Accepted spellings: a bare name
// (".vimrc"), a ~/ path, or an absolute path under home.
func DotfileVolumes(home string, dotfiles []string) ([]string, error) {
	home = filepath.Clean(home)
	separator := string(os.PathSeparator)

	volumes := make([]string, 0, len(dotfiles))

	for _, dotfile := range dotfiles {
		resolved := dotfile

		switch {
		case filepath.IsAbs(resolved):
			if !strings.HasPrefix(resolved, home+separator) {
				return nil, errors.New(i18n.T("not_in_home", dotfile))
			}
		case strings.HasPrefix(resolved, "~"+separator):
			resolved = filepath.Join(home, strings.TrimPrefix(resolved, "~"+separator))
		default:
			resolved = filepath.Join(home, resolved)
		}

		if _, err := os.Stat(resolved); err != nil {
			return nil, errors.New(i18n.T("no_such_file", dotfile))
		}

		relative, err := filepath.Rel(home, resolved)
		if err != nil || !strings.HasPrefix(relative, ".") || strings.HasPrefix(relative, "..") {
			return nil, errors.New(i18n.T("not_a_dotfile", dotfile))
		}

		volumes = append(volumes, resolved+":"+containerHome+"/"+filepath.ToSlash(relative)+":ro")
	}

	return volumes, nil
}

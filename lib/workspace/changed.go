package workspace

import (
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
)

// Changed returns the files under the git repository enclosing dir that are
// modified, staged or untracked and accepted by m. Deleted files are left out.
func Changed(dir string, m Matcher) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}

	w, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	status, err := w.Status()
	if err != nil {
		return nil, err
	}

	root := w.Filesystem.Root()
	var out []string
	for rel, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if !m.Match(rel) {
			continue
		}
		out = append(out, filepath.Join(root, filepath.FromSlash(rel)))
	}

	sort.Strings(out)
	return out, nil
}

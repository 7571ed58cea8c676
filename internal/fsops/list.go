package fsops

import (
	"os"
	"sort"
)

// ListDir lists the non-recursive entries of dir. Directories carry a trailing "/"
// and come first; each group is sorted by name. An empty dir means ".".
func ListDir(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name()+"/")
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(dirs)
	sort.Strings(files)

	return append(dirs, files...), nil
}

package extract

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListReportFiles walks dir recursively and returns every .xlsx and .xlsm
// file, sorted by path. Excel lock files ("~$...") are skipped. A missing
// directory yields an empty list rather than an error so an empty pending
// folder is not fatal.
func ListReportFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xlsm":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

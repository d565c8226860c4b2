// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// findProjects returns every .aup file below root, matched case
// insensitively, in lexical order.
func findProjects(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".aup") {
			found = append(found, path)
		}
		return nil
	})

	return found, err
}

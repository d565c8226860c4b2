// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/formats/labels"
	"github.com/spf13/cobra"
)

func newJSONCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "json [dir...]",
		Short: "Describe channels and labels of every project below the given dirs as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return a.runJSON(cmd, args)
		},
	}
}

func (a *app) runJSON(cmd *cobra.Command, roots []string) error {
	out := map[string]labels.ProjectInfo{}

	for _, root := range roots {
		paths, err := findProjects(root)
		if err != nil {
			return err
		}

		for _, path := range paths {
			p, err := aup.Open(path, aup.WithLogger(a.log))
			if err != nil {
				return err
			}
			info, err := labels.Describe(p)
			if err != nil {
				return err
			}
			out[path] = info
		}
	}

	return labels.WriteJSON(cmd.OutOrStdout(), out)
}

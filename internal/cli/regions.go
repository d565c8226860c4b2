// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/formats/labels"
	"github.com/spf13/cobra"
)

func newRegionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions [dir]",
		Short: "List the labels of every project below dir as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return a.runRegions(cmd, root)
		},
	}
}

func (a *app) runRegions(cmd *cobra.Command, root string) error {
	paths, err := findProjects(root)
	if err != nil {
		return err
	}

	l := labels.NewLister(cmd.OutOrStdout())
	if err := l.WriteHeader(); err != nil {
		return err
	}

	for _, path := range paths {
		p, err := aup.Open(path, aup.WithLogger(a.log))
		if err != nil {
			return err
		}
		regions, err := p.Annotations()
		if err != nil {
			return err
		}
		if err := l.Add(path, regions); err != nil {
			return err
		}
		a.log.Debug("project listed", "path", path, "regions", len(regions))
	}

	return nil
}

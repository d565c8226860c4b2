// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/ik5/aupstream/aup"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <project.aup>",
		Short: "Print the channel layout of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd, args[0])
		},
	}
}

func (a *app) runInfo(cmd *cobra.Command, path string) error {
	p, err := aup.Open(path, aup.WithLogger(a.log))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "project: %s\n", p.Name)
	fmt.Fprintf(w, "rate: %g Hz\n", p.Rate)

	nsamples := p.ChannelNSamples()
	for i, name := range p.ChannelNames() {
		fmt.Fprintf(w, "channel %d %q: %d samples (%.3fs)\n",
			i, name, nsamples[i], float64(nsamples[i])/p.Rate)

		bounds, err := p.ClipBoundaries(i)
		if err != nil {
			return err
		}
		for b := range bounds {
			fmt.Fprintf(w, "  clip %d: [%d, %d)\n", b.Clip, b.Start, b.End)
		}
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/aupstream/audio"
	"github.com/ik5/aupstream/aup"
	"github.com/ik5/aupstream/formats/aiff"
	"github.com/ik5/aupstream/formats/labels"
	"github.com/ik5/aupstream/formats/wav"
	"github.com/spf13/cobra"
)

func encoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Encoder{})
	reg.Register("aiff", aiff.Encoder{})
	return reg
}

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <project.aup>",
		Short: "Write every channel as a mono 16-bit file plus a label CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args[0])
		},
	}

	cmd.Flags().String("out", "", "Output directory (default from AUPSTREAM_OUT)")
	cmd.Flags().String("format", "", "Output format: wav or aiff (default from AUPSTREAM_FORMAT)")
	cmd.Flags().Float64("start", 0, "Start time in seconds")
	cmd.Flags().Float64("end", -1, "End time in seconds (negative reads to the end)")
	cmd.Flags().Bool("mixdown", false, "Write one file averaging all channels instead of one per channel")
	cmd.Flags().Bool("labels", true, "Write the label track CSV")

	return cmd
}

func (a *app) runExport(cmd *cobra.Command, path string) error {
	outDir, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	start, _ := cmd.Flags().GetFloat64("start")
	end, _ := cmd.Flags().GetFloat64("end")
	mixdown, _ := cmd.Flags().GetBool("mixdown")
	withLabels, _ := cmd.Flags().GetBool("labels")

	if outDir == "" {
		outDir = a.cfg.OutDir
	}
	if format == "" {
		format = a.cfg.Format
	}
	if end < 0 {
		end = aup.ToEnd
	}

	enc, ok := encoders().Get(strings.ToLower(format))
	if !ok {
		return fmt.Errorf("unsupported format: %s", format)
	}
	ext := "." + strings.ToLower(format)

	p, err := aup.Open(path, aup.WithLogger(a.log))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if mixdown {
		src, err := aup.NewProjectSource(p, start, end)
		if err != nil {
			return err
		}
		if err := a.encodeFile(enc, filepath.Join(outDir, base+"_mix"+ext), audio.NewMonoMixer(src)); err != nil {
			return err
		}
	} else {
		for ch := range p.NumChannels() {
			src, err := aup.NewChannelSource(p, ch, start, end)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			name := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", base, ch, ext))
			if err := a.encodeFile(enc, name, src); err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
		}
	}

	if !withLabels {
		return nil
	}

	regions, err := p.Annotations()
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(outDir, base+"_.csv"))
	if err != nil {
		return fmt.Errorf("create label csv: %w", err)
	}
	defer f.Close()

	if err := labels.WriteCSV(f, regions); err != nil {
		return err
	}

	a.log.Info("labels written", "file", f.Name(), "regions", len(regions))

	return f.Close()
}

func (a *app) encodeFile(enc audio.Encoder, name string, src audio.Source) error {
	defer src.Close()

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	if err := enc.Encode(f, src); err != nil {
		return err
	}

	a.log.Info("audio written", "file", name, "rate", src.SampleRate())

	return f.Close()
}

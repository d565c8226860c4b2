// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Namespace is the project XML namespace fixtures are written in.
const Namespace = "http://audacity.sourceforge.net/xml/"

// Project describes an on-disk project fixture.
type Project struct {
	Name   string
	Rate   float64
	Tracks []Track
	Labels []LabelTrack

	// HeaderBytes of junk written before the samples of every block file.
	HeaderBytes int
}

type Track struct {
	Name  string
	Clips []Clip
}

type Clip struct {
	Offset float64 // seconds
	Blocks []Block
}

// Block is one waveblock. Samples are written to a block file; if Samples
// is nil the block is a silentblockfile of SilentLen samples.
type Block struct {
	Start     int64 // within the clip
	Samples   []float32
	SilentLen int64

	// Missing leaves the file out; Truncate drops that many trailing bytes.
	Missing  bool
	Truncate int
}

type LabelTrack struct {
	Name   string
	Labels []Label
}

type Label struct {
	T, T1 float64
	Title string
	Point bool // omit t1
}

// Ramp returns n samples base, base+step, base+2*step, ...
func Ramp(n int, base, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = base + float32(i)*step
	}
	return out
}

// BlockPath is where a block file named name lives for project projName.
func BlockPath(dir, projName, name string) string {
	return filepath.Join(dir, projName, name[0:3], "d"+name[3:5], name)
}

// WriteProject writes p below dir and returns the path of the project file.
// Block files are named e0000000.au, e0000001.au, ... in document order.
func WriteProject(tb testing.TB, dir string, p Project) string {
	tb.Helper()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" standalone="no" ?>`+"\n")
	fmt.Fprintf(&sb, `<project xmlns="%s" projname="%s" version="1.3.0" rate="%s">`+"\n",
		Namespace, esc(p.Name), ftoa(p.Rate))

	n := 0
	for _, tr := range p.Tracks {
		fmt.Fprintf(&sb, `  <wavetrack name="%s" channel="2" linked="0" mute="0" solo="0" rate="%s" gain="1.0" pan="0.0">`+"\n",
			esc(tr.Name), ftoa(p.Rate))
		for _, cl := range tr.Clips {
			fmt.Fprintf(&sb, `    <waveclip offset="%s">`+"\n", ftoa(cl.Offset))
			sb.WriteString(`      <sequence maxsamples="262144" sampleformat="262159">` + "\n")
			for _, b := range cl.Blocks {
				fmt.Fprintf(&sb, `        <waveblock start="%d">`+"\n", b.Start)
				if b.Samples == nil {
					fmt.Fprintf(&sb, `          <silentblockfile len="%d"/>`+"\n", b.SilentLen)
				} else {
					name := fmt.Sprintf("e%07x.au", n)
					n++
					fmt.Fprintf(&sb, `          <simpleblockfile filename="%s" len="%d" min="-1" max="1" rms="0"/>`+"\n",
						name, len(b.Samples))
					if !b.Missing {
						writeBlock(tb, BlockPath(dir, p.Name, name), p.HeaderBytes, b)
					}
				}
				sb.WriteString("        </waveblock>\n")
			}
			sb.WriteString("      </sequence>\n")
			sb.WriteString("    </waveclip>\n")
		}
		sb.WriteString("  </wavetrack>\n")
	}

	for _, lt := range p.Labels {
		fmt.Fprintf(&sb, `  <labeltrack name="%s" numlabels="%d">`+"\n", esc(lt.Name), len(lt.Labels))
		for _, l := range lt.Labels {
			if l.Point {
				fmt.Fprintf(&sb, `    <label t="%s" title="%s"/>`+"\n", ftoa(l.T), esc(l.Title))
				continue
			}
			fmt.Fprintf(&sb, `    <label t="%s" t1="%s" title="%s"/>`+"\n", ftoa(l.T), ftoa(l.T1), esc(l.Title))
		}
		sb.WriteString("  </labeltrack>\n")
	}
	sb.WriteString("</project>\n")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("mkdir project dir: %v", err)
	}
	path := filepath.Join(dir, p.Name+".aup")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		tb.Fatalf("write project: %v", err)
	}

	return path
}

func writeBlock(tb testing.TB, path string, header int, b Block) {
	tb.Helper()

	buf := make([]byte, header, header+len(b.Samples)*4)
	for i := range buf {
		buf[i] = 0xAB
	}
	for _, s := range b.Samples {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(s))
	}
	buf = buf[:len(buf)-min(b.Truncate, len(buf))]

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir block dir: %v", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		tb.Fatalf("write block file: %v", err)
	}
}

func ftoa(f float64) string {
	return fmt.Sprintf("%g", f)
}

func esc(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

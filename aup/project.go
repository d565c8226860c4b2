// SPDX-License-Identifier: EPL-2.0

package aup

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Project is the layout of an Audacity project: its sample rate and, per
// wave track, the clips and the segment index built from their blocks.
// A Project is never modified after Open or Load returns, so it may be
// shared between goroutines.
type Project struct {
	Rate     float64
	Name     string
	Dir      string
	Channels []Channel

	root node
	log  *slog.Logger
}

// ChannelKind mirrors the "channel" attribute of a wave track.
type ChannelKind int

const (
	LeftChannel ChannelKind = iota
	RightChannel
	MonoChannel
)

// Channel is one wave track.
type Channel struct {
	Index  int
	Name   string
	Kind   ChannelKind
	Linked bool
	Mute   bool
	Solo   bool
	Gain   float64
	Pan    float64
	Clips  []Clip

	segments []Segment
	bounds   []ClipBounds
}

// Clip is one waveclip of a track; Blocks are in time order.
type Clip struct {
	Index  int
	Offset float64 // seconds
	Blocks []BlockRef
}

// Segments returns a copy of the channel's segment index.
func (c *Channel) Segments() []Segment { return slices.Clone(c.segments) }

// Len is the number of samples spanned by the channel's segments.
func (c *Channel) Len() int64 {
	if len(c.segments) == 0 {
		return 0
	}
	_, end := c.segments[len(c.segments)-1].Span()
	return end
}

type options struct {
	log *slog.Logger
}

// Option configures Open and Load.
type Option func(*options)

// WithLogger makes project loading report progress at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Open reads the project file at path. Block files are resolved relative
// to the directory holding it.
func Open(path string, opts ...Option) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	return Load(f, filepath.Dir(path), opts...)
}

// Load reads a project document from r. dir is the directory the
// project's data directory lives in. Every referenced block file must
// exist; the first one that does not fails the load with a
// *BlockFileMissingError.
func Load(r io.Reader, dir string, opts ...Option) (*Project, error) {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}

	rate, err := root.float("rate")
	if err != nil {
		return nil, err
	}
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return nil, malformed("invalid sample rate %v", rate)
	}

	name, ok := root.attr("projname")
	if !ok || name == "" {
		return nil, malformed("missing attribute %q", "projname")
	}

	p := &Project{
		Rate: rate,
		Name: name,
		Dir:  dir,
		root: root,
		log:  o.log,
	}

	for i, track := range root.children("wavetrack") {
		ch, err := p.loadChannel(i, track)
		if err != nil {
			return nil, fmt.Errorf("wavetrack %d: %w", i, err)
		}
		p.Channels = append(p.Channels, ch)
	}

	p.log.Debug("project loaded",
		"project", p.Name,
		"rate", p.Rate,
		"channels", len(p.Channels))

	return p, nil
}

func (p *Project) loadChannel(idx int, track node) (Channel, error) {
	ch := Channel{
		Index:  idx,
		Name:   track.str("name", ""),
		Linked: track.bool("linked"),
		Mute:   track.bool("mute"),
		Solo:   track.bool("solo"),
	}

	var err error
	if ch.Gain, err = track.floatOr("gain", 1); err != nil {
		return Channel{}, err
	}
	if ch.Pan, err = track.floatOr("pan", 0); err != nil {
		return Channel{}, err
	}
	kind, err := track.intOr("channel", int64(MonoChannel))
	if err != nil {
		return Channel{}, err
	}
	ch.Kind = ChannelKind(kind)

	var all []BlockRef
	for ci, wc := range track.children("waveclip") {
		clip, err := p.loadClip(ci, wc)
		if err != nil {
			return Channel{}, fmt.Errorf("waveclip %d: %w", ci, err)
		}
		ch.Clips = append(ch.Clips, clip)
		all = append(all, clip.Blocks...)
	}

	ch.segments, ch.bounds, err = BuildSegments(all)
	if err != nil {
		return Channel{}, err
	}

	p.log.Debug("channel loaded",
		"channel", idx,
		"name", ch.Name,
		"clips", len(ch.Clips),
		"segments", len(ch.segments),
		"samples", ch.Len())

	return ch, nil
}

func (p *Project) loadClip(idx int, wc node) (Clip, error) {
	offset, err := wc.float("offset")
	if err != nil {
		return Clip{}, err
	}

	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return Clip{}, malformed("<%s> offset %v is not finite", wc.tag(), offset)
	}

	clip := Clip{Index: idx, Offset: offset}
	clipStart := int64(math.Round(offset * p.Rate))

	for _, seq := range wc.children("sequence") {
		for _, wb := range seq.children("waveblock") {
			start, err := wb.int("start")
			if err != nil {
				return Clip{}, err
			}

			pos := clipStart + start
			for _, bf := range wb.descendants("") {
				var path string
				switch bf.tag() {
				case "simpleblockfile":
					if path, err = p.blockPath(bf); err != nil {
						return Clip{}, err
					}
				case "silentblockfile":
				default:
					if strings.HasSuffix(bf.tag(), "blockfile") {
						p.log.Warn("unsupported block file read as silence",
							"project", p.Name,
							"clip", idx,
							"tag", bf.tag(),
							"len", bf.str("len", ""))
					}
					continue
				}

				n, err := bf.int("len")
				if err != nil {
					return Clip{}, err
				}
				if n <= 0 {
					return Clip{}, malformed("<%s> has non-positive len %d", bf.tag(), n)
				}

				clip.Blocks = append(clip.Blocks, BlockRef{
					Path:  path,
					Start: pos,
					End:   pos + n,
					Clip:  idx,
				})
				pos += n
			}
		}
	}

	slices.SortStableFunc(clip.Blocks, func(a, b BlockRef) int {
		return cmp.Compare(a.Start, b.Start)
	})

	return clip, nil
}

// blockPath resolves a simpleblockfile to <dir>/<project>/eXX/dXX/<file>
// and checks that it exists.
func (p *Project) blockPath(bf node) (string, error) {
	name, ok := bf.attr("filename")
	if !ok {
		return "", malformed("<%s> missing attribute %q", bf.tag(), "filename")
	}
	if len(name) < 5 {
		return "", malformed("block file name %q too short", name)
	}

	path := filepath.Join(p.Dir, p.Name, name[0:3], "d"+name[3:5], name)

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &BlockFileMissingError{Project: p.Name, Path: path}
	}
	if err != nil {
		return "", fmt.Errorf("stat block file: %w", err)
	}

	return path, nil
}

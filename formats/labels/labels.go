// SPDX-License-Identifier: EPL-2.0

// Package labels writes project annotations as CSV and JSON.
package labels

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ik5/aupstream/aup"
)

// WriteCSV writes one "label,start,end" row per region, without a header.
func WriteCSV(w io.Writer, regions []aup.Region) error {
	cw := csv.NewWriter(w)
	for _, r := range regions {
		if err := cw.Write([]string{r.Label, seconds(r.Start), seconds(r.End)}); err != nil {
			return fmt.Errorf("write region: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// Lister writes regions of many projects as one fully quoted CSV table
// with a path column.
type Lister struct {
	w      io.Writer
	header bool
}

var listHeader = []string{"path", "region_label", "start_sec", "end_sec"}

func NewLister(w io.Writer) *Lister {
	return &Lister{w: w}
}

// Add writes one row per region of the project at path. The header is
// written before the first row or by an explicit WriteHeader.
func (l *Lister) Add(path string, regions []aup.Region) error {
	if err := l.WriteHeader(); err != nil {
		return err
	}
	for _, r := range regions {
		if err := l.line(path, r.Label, seconds(r.Start), seconds(r.End)); err != nil {
			return err
		}
	}
	return nil
}

// WriteHeader writes the header line once.
func (l *Lister) WriteHeader() error {
	if l.header {
		return nil
	}
	l.header = true
	return l.line(listHeader...)
}

func (l *Lister) line(fields ...string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	if _, err := io.WriteString(l.w, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}

// ChannelInfo summarises one channel of a project.
type ChannelInfo struct {
	Index    int              `json:"index"`
	Name     string           `json:"name"`
	NSamples int64            `json:"nsamples"`
	Clips    []aup.ClipBounds `json:"clips"`
}

// ProjectInfo is the JSON form of one project.
type ProjectInfo struct {
	Rate     float64       `json:"rate"`
	Channels []ChannelInfo `json:"channels"`
	Regions  []aup.Region  `json:"regions"`
}

// Describe collects channel metadata and annotations of p.
func Describe(p *aup.Project) (ProjectInfo, error) {
	regions, err := p.Annotations()
	if err != nil {
		return ProjectInfo{}, err
	}

	info := ProjectInfo{
		Rate:     p.Rate,
		Channels: make([]ChannelInfo, 0, p.NumChannels()),
		Regions:  regions,
	}
	if info.Regions == nil {
		info.Regions = []aup.Region{}
	}

	names := p.ChannelNames()
	nsamples := p.ChannelNSamples()
	for i := range p.NumChannels() {
		bounds, err := p.ClipBoundaries(i)
		if err != nil {
			return ProjectInfo{}, err
		}
		clips := slices.Collect(bounds)
		if clips == nil {
			clips = []aup.ClipBounds{}
		}
		info.Channels = append(info.Channels, ChannelInfo{
			Index:    i,
			Name:     names[i],
			NSamples: nsamples[i],
			Clips:    clips,
		})
	}

	return info, nil
}

// WriteJSON writes projects keyed by path, indented by two spaces.
func WriteJSON(w io.Writer, projects map[string]ProjectInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(projects); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// seconds formats a time with the shortest exact decimal, keeping at
// least one fractional digit so whole seconds read "1.0".
func seconds(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

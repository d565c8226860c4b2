// SPDX-License-Identifier: EPL-2.0

package aup

// Region is a labelled time range from a label track.
type Region struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
	Track string  `json:"track,omitempty"`
}

// Annotations returns the labels of every label track in document order.
// A label without an end time is a point label and ends where it starts.
func (p *Project) Annotations() ([]Region, error) {
	var regions []Region
	for _, lt := range p.root.descendants("labeltrack") {
		track := lt.str("name", "")
		for _, l := range lt.descendants("") {
			if _, ok := l.attr("t"); !ok {
				continue
			}

			start, err := l.float("t")
			if err != nil {
				return nil, err
			}
			end, err := l.floatOr("t1", start)
			if err != nil {
				return nil, err
			}

			regions = append(regions, Region{
				Start: start,
				End:   end,
				Label: l.str("title", ""),
				Track: track,
			})
		}
	}

	return regions, nil
}

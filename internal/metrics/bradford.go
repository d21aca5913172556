package metrics

import (
	"fmt"
	"sort"
)

// Zone selects a Bradford partition of the sources. Zones 12 and 23 are the
// unions of their neighbours.
type Zone int

const (
	Zone1  Zone = 1
	Zone2  Zone = 2
	Zone3  Zone = 3
	Zone12 Zone = 12
	Zone23 Zone = 23
)

// ParseZone validates a zone selector.
func ParseZone(n int) (Zone, error) {
	switch z := Zone(n); z {
	case Zone1, Zone2, Zone3, Zone12, Zone23:
		return z, nil
	}
	return 0, fmt.Errorf("invalid Bradford zone %d (want 1, 2, 3, 12 or 23)", n)
}

func (z Zone) contains(cumulative, c1, c2 int) bool {
	switch z {
	case Zone1:
		return cumulative <= c1
	case Zone2:
		return cumulative > c1 && cumulative <= c2
	case Zone3:
		return cumulative > c2
	case Zone12:
		return cumulative <= c2
	case Zone23:
		return cumulative > c1
	}
	return false
}

// SourceZone is one source's row in the Bradford table.
type SourceZone struct {
	Name       string `json:"name"`
	Documents  int    `json:"documents"`
	Cumulative int    `json:"cumulative"`
	Zone       Zone   `json:"zone"`
}

// BradfordTable ranks sources by document count and assigns each to zone 1,
// 2 or 3 by cumulative count against thirds of the total.
func BradfordTable(names []string, counts []int) []SourceZone {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	rows := make([]SourceZone, len(order))
	total := 0
	for i, j := range order {
		total += counts[j]
		rows[i] = SourceZone{Name: names[j], Documents: counts[j], Cumulative: total}
	}

	c1, c2 := total/3, 2*total/3
	for i := range rows {
		switch {
		case Zone1.contains(rows[i].Cumulative, c1, c2):
			rows[i].Zone = Zone1
		case Zone2.contains(rows[i].Cumulative, c1, c2):
			rows[i].Zone = Zone2
		default:
			rows[i].Zone = Zone3
		}
	}
	return rows
}

// BradfordSources returns the names of the sources that fall in zone.
func BradfordSources(names []string, counts []int, zone Zone) []string {
	rows := BradfordTable(names, counts)
	total := 0
	if len(rows) > 0 {
		total = rows[len(rows)-1].Cumulative
	}
	c1, c2 := total/3, 2*total/3

	var out []string
	for _, r := range rows {
		if zone.contains(r.Cumulative, c1, c2) {
			out = append(out, r.Name)
		}
	}
	return out
}

package collection

// Snapshot is the read-only projection of State consumed by renderers.
type Snapshot struct {
	DiscoveredIDs  []int `json:"discoveredIds" jsonschema:"description=Discovered body ids in ascending order"`
	Score          int   `json:"score"`
	SelectedID     *int  `json:"selectedId,omitempty" jsonschema:"description=Body shown in the info panel"`
	SecretUnlocked bool  `json:"secretUnlocked"`
	Total          int   `json:"total" jsonschema:"description=Number of bodies to collect"`
}

// IsDiscovered reports whether id is in the discovered set.
func (s Snapshot) IsDiscovered(id int) bool {
	for _, d := range s.DiscoveredIDs {
		if d == id {
			return true
		}
	}
	return false
}

// IsSelected reports whether id is the selected body.
func (s Snapshot) IsSelected(id int) bool {
	return s.SelectedID != nil && *s.SelectedID == id
}

// Discovered returns the number of discovered bodies.
func (s Snapshot) Discovered() int {
	return len(s.DiscoveredIDs)
}

// AllDiscovered reports whether every body has been found.
func (s Snapshot) AllDiscovered() bool {
	return s.Total > 0 && len(s.DiscoveredIDs) == s.Total
}

// Fraction is the progress bar fill in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(len(s.DiscoveredIDs)) / float64(s.Total)
}

// Equal compares two snapshots field by field.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Score != o.Score || s.SecretUnlocked != o.SecretUnlocked || s.Total != o.Total {
		return false
	}
	if (s.SelectedID == nil) != (o.SelectedID == nil) {
		return false
	}
	if s.SelectedID != nil && *s.SelectedID != *o.SelectedID {
		return false
	}
	if len(s.DiscoveredIDs) != len(o.DiscoveredIDs) {
		return false
	}
	for i := range s.DiscoveredIDs {
		if s.DiscoveredIDs[i] != o.DiscoveredIDs[i] {
			return false
		}
	}
	return true
}

package subnet

import "github.com/matzehuels/subnetplan/pkg/ipv4"

// ViewOptions configures the leaf row projection.
type ViewOptions struct {
	// Azure applies the Azure reservation policy (first four addresses and
	// broadcast reserved) to usable ranges and host capacities.
	Azure bool

	// Colors and Comments carry per-leaf annotations keyed by node id.
	// Missing entries leave the corresponding row fields empty.
	Colors   map[string]string
	Comments map[string]string
}

// Row is the rendering-facing projection of one leaf: everything a table,
// CSV export, or API response needs, pre-formatted where the value is an
// address. PathIDs lists the ancestor ids root first (the leaf itself
// excluded) so consumers can group adjacent rows by shared ancestry.
type Row struct {
	ID           string   `json:"id"`
	CIDR         string   `json:"cidr"`
	Network      string   `json:"network"`
	Netmask      string   `json:"netmask"`
	UsableRange  string   `json:"usable_range"`
	HostCapacity uint64   `json:"host_capacity"`
	Depth        int      `json:"depth"`
	PathIDs      []string `json:"path_ids,omitempty"`
	Color        string   `json:"color,omitempty"`
	Comment      string   `json:"comment,omitempty"`
}

// Rows projects the tree's leaves into display rows, in ascending network
// order (inherited from [Leaves]).
func Rows(t Tree, rootID string, opts ViewOptions) []Row {
	leaves := Leaves(t, rootID)
	rows := make([]Row, len(leaves))
	for i, leaf := range leaves {
		var usable ipv4.Range
		var capacity uint64
		if opts.Azure {
			usable = ipv4.UsableRangeAzure(leaf.Network, leaf.Prefix)
			capacity = ipv4.HostCapacityAzure(leaf.Prefix)
		} else {
			usable = ipv4.UsableRange(leaf.Network, leaf.Prefix)
			capacity = ipv4.HostCapacity(leaf.Prefix)
		}

		path := Path(t, leaf.ID)
		pathIDs := make([]string, 0, len(path)-1)
		for _, n := range path[:len(path)-1] {
			pathIDs = append(pathIDs, n.ID)
		}

		rows[i] = Row{
			ID:           leaf.ID,
			CIDR:         leaf.CIDR(),
			Network:      ipv4.FormatAddress(leaf.Network),
			Netmask:      ipv4.FormatAddress(ipv4.PrefixMask(leaf.Prefix)),
			UsableRange:  usable.String(),
			HostCapacity: capacity,
			Depth:        leaf.Depth,
			PathIDs:      pathIDs,
			Color:        opts.Colors[leaf.ID],
			Comment:      opts.Comments[leaf.ID],
		}
	}
	return rows
}

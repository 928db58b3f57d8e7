package subnet

import "testing"

func TestRows(t *testing.T) {
	rootID, tree := buildPartition(t, "192.168.0.0/16", "root", "root-0")

	rows := Rows(tree, rootID, ViewOptions{
		Colors:   map[string]string{"root-0-0": "#FF00AA"},
		Comments: map[string]string{"root-1": "reserved"},
	})

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.CIDR != "192.168.0.0/18" {
		t.Errorf("first row = %s, want 192.168.0.0/18", first.CIDR)
	}
	if first.Netmask != "255.255.192.0" {
		t.Errorf("netmask = %s, want 255.255.192.0", first.Netmask)
	}
	if first.UsableRange != "192.168.0.1 - 192.168.63.254" {
		t.Errorf("usable = %s", first.UsableRange)
	}
	if first.HostCapacity != 16382 {
		t.Errorf("capacity = %d, want 16382", first.HostCapacity)
	}
	if first.Color != "#FF00AA" {
		t.Errorf("color = %q, want #FF00AA", first.Color)
	}
	if !equalStrings(first.PathIDs, []string{"root", "root-0"}) {
		t.Errorf("path = %v, want [root root-0]", first.PathIDs)
	}

	last := rows[2]
	if last.Comment != "reserved" {
		t.Errorf("comment = %q, want reserved", last.Comment)
	}
	if last.Depth != 1 {
		t.Errorf("depth = %d, want 1", last.Depth)
	}
}

func TestRowsAzure(t *testing.T) {
	rootID, tree := buildPartition(t, "192.168.1.0/24")
	rows := Rows(tree, rootID, ViewOptions{Azure: true})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].UsableRange != "192.168.1.4 - 192.168.1.254" {
		t.Errorf("usable = %s, want 192.168.1.4 - 192.168.1.254", rows[0].UsableRange)
	}
	if rows[0].HostCapacity != 251 {
		t.Errorf("capacity = %d, want 251", rows[0].HostCapacity)
	}
}

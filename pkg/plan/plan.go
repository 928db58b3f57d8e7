// Package plan serializes a subnet partition into a versioned, URL-safe
// token and restores it again.
//
// A plan is a self-contained description of a partition: schema version,
// base block, reservation-policy flag, and the ordered leaf list with
// optional per-leaf color and comment annotations. Tokens are JSON encoded
// and then base64url encoded without padding, so they can be embedded
// directly in a URL or pasted into a terminal.
//
// Decoding is strictly defensive: [Decode] never panics or returns an
// error - any malformed token, unknown schema version, or structurally
// invalid payload yields nil, and individually malformed leaf entries are
// dropped rather than failing the whole token.
package plan

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/subnetplan/pkg/subnet"
)

// Version is the only plan schema version this package reads or writes.
// Unknown versions are rejected outright - forward compatibility is never
// guessed at.
const Version = 1

// MaxCommentLength caps per-leaf comments, in characters.
const MaxCommentLength = 2000

// colorRe matches the only color form plans retain: "#RRGGBB".
var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Leaf is one partition block inside a plan, with optional annotations.
type Leaf struct {
	Network uint32 `json:"n"`
	Prefix  int    `json:"p"`
	Color   string `json:"c,omitempty"`
	Comment string `json:"m,omitempty"`
}

// Plan is a versioned description of a full partition.
type Plan struct {
	Version int    `json:"v"`
	Network uint32 `json:"net"`
	Prefix  int    `json:"pre"`
	Azure   bool   `json:"az,omitempty"`
	Leaves  []Leaf `json:"leaves"`
}

// Build projects a leaf list plus optional per-leaf annotations (keyed by
// node id) into a plan. Leaves are sorted ascending by network. Comments
// are trimmed and capped at [MaxCommentLength] characters; colors are kept
// only when they are well-formed "#RRGGBB" strings.
func Build(baseNetwork uint32, basePrefix int, azure bool, leaves []subnet.Leaf, colors, comments map[string]string) Plan {
	p := Plan{
		Version: Version,
		Network: baseNetwork,
		Prefix:  basePrefix,
		Azure:   azure,
		Leaves:  make([]Leaf, 0, len(leaves)),
	}
	for _, leaf := range leaves {
		entry := Leaf{
			Network: leaf.Network,
			Prefix:  leaf.Prefix,
			Color:   cleanColor(colors[leaf.ID]),
			Comment: cleanComment(comments[leaf.ID]),
		}
		p.Leaves = append(p.Leaves, entry)
	}
	slices.SortFunc(p.Leaves, func(a, b Leaf) int {
		switch {
		case a.Network < b.Network:
			return -1
		case a.Network > b.Network:
			return 1
		default:
			return a.Prefix - b.Prefix
		}
	})
	return p
}

// LeafDefs returns the plan's leaves as reconstruction targets.
func (p *Plan) LeafDefs() []subnet.LeafDef {
	defs := make([]subnet.LeafDef, len(p.Leaves))
	for i, leaf := range p.Leaves {
		defs[i] = subnet.LeafDef{Network: leaf.Network, Prefix: leaf.Prefix}
	}
	return defs
}

// Materialize reconstructs a live tree from the plan and remaps the plan's
// annotations onto the reconstructed node ids. Definitions the builder
// could not place are returned in skipped (see [subnet.Build]).
func (p *Plan) Materialize() (rootID string, tree subnet.Tree, colors, comments map[string]string, skipped []subnet.LeafDef) {
	rootID, tree, skipped = subnet.Build(p.Network, p.Prefix, p.LeafDefs())

	byNetwork := make(map[uint32]Leaf, len(p.Leaves))
	for _, leaf := range p.Leaves {
		byNetwork[leaf.Network] = leaf
	}

	colors = make(map[string]string)
	comments = make(map[string]string)
	for _, leaf := range subnet.Leaves(tree, rootID) {
		entry, ok := byNetwork[leaf.Network]
		if !ok || entry.Prefix != leaf.Prefix {
			continue
		}
		if entry.Color != "" {
			colors[leaf.ID] = entry.Color
		}
		if entry.Comment != "" {
			comments[leaf.ID] = entry.Comment
		}
	}
	return rootID, tree, colors, comments, skipped
}

func cleanColor(c string) string {
	if colorRe.MatchString(c) {
		return c
	}
	return ""
}

func cleanComment(m string) string {
	m = strings.TrimSpace(m)
	if runes := []rune(m); len(runes) > MaxCommentLength {
		return string(runes[:MaxCommentLength])
	}
	return m
}

// Encode serializes the plan as JSON wrapped in unpadded base64url,
// suitable for embedding in a URL fragment or query parameter.
func Encode(p Plan) string {
	data, err := json.Marshal(p)
	if err != nil {
		// Plan contains only plain values; Marshal cannot fail in practice.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// wirePlan decodes the token envelope. Net and Pre are pointers so that
// absent or non-numeric values are distinguishable; leaves stay raw so each
// entry can be validated independently.
type wirePlan struct {
	V      int               `json:"v"`
	Net    *uint32           `json:"net"`
	Pre    *int              `json:"pre"`
	Az     bool              `json:"az"`
	Leaves []json.RawMessage `json:"leaves"`
}

type wireLeaf struct {
	N *uint32 `json:"n"`
	P *int    `json:"p"`
	C string  `json:"c"`
	M string  `json:"m"`
}

// Decode parses a token produced by [Encode]. It returns nil for anything
// it cannot fully validate: undecodable base64, invalid JSON, a schema
// version other than 1, missing or non-numeric base network/prefix, or a
// leaf list that is empty after per-entry cleaning. Malformed leaf entries
// are dropped individually rather than failing the token. Decode never
// panics and never returns an error.
func Decode(token string) *Plan {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil
	}

	var wire wirePlan
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}
	if wire.V != Version || wire.Net == nil || wire.Pre == nil {
		return nil
	}

	p := &Plan{
		Version: wire.V,
		Network: *wire.Net,
		Prefix:  *wire.Pre,
		Azure:   wire.Az,
	}
	for _, raw := range wire.Leaves {
		var entry wireLeaf
		if err := json.Unmarshal(raw, &entry); err != nil || entry.N == nil || entry.P == nil {
			continue
		}
		p.Leaves = append(p.Leaves, Leaf{
			Network: *entry.N,
			Prefix:  *entry.P,
			Color:   cleanColor(entry.C),
			Comment: cleanComment(entry.M),
		})
	}
	if len(p.Leaves) == 0 {
		return nil
	}
	return p
}

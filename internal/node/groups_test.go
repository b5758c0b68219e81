package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scene struct {
	members     []string
	controllers []string
}

func (s scene) Members() []string     { return s.members }
func (s scene) Controllers() []string { return s.controllers }

type directory struct {
	entries []Entry
	groups  map[string]scene
}

func (d directory) Entries() []Entry { return d.entries }

func (d directory) Group(id string) (Group, bool) {
	g, ok := d.groups[id]
	return g, ok
}

func TestGroups(t *testing.T) {
	dir := directory{
		entries: []Entry{
			{Kind: KindFolder, ID: "1000", Name: "Downstairs"},
			{Kind: KindNode, ID: testNodeID, Name: "Kitchen"},
			{Kind: KindGroup, ID: "20001", Name: "Evening"},
			{Kind: KindGroup, ID: "20002", Name: "All Off"},
			{Kind: KindGroup, ID: "20003", Name: "Porch"},
			{Kind: KindGroup, ID: "20004", Name: "Missing"},
		},
		groups: map[string]scene{
			"20001": {members: []string{testNodeID, "AA BB CC 1"}},
			"20002": {members: []string{testNodeID}, controllers: []string{testNodeID}},
			"20003": {members: []string{"AA BB CC 1"}, controllers: []string{testNodeID}},
		},
	}

	n := New(testNodeID, LevelOf(0), Deps{Directory: dir})

	tests := []struct {
		name     string
		filter   GroupFilter
		expected []string
	}{
		{name: "both", filter: DefaultGroupFilter, expected: []string{"20001", "20002", "20003"}},
		{name: "responder_only", filter: GroupFilter{Responder: true}, expected: []string{"20001", "20002"}},
		{name: "controller_only", filter: GroupFilter{Controller: true}, expected: []string{"20002", "20003"}},
		{name: "neither", filter: GroupFilter{}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Groups(tt.filter))
		})
	}
}

func TestGroups_WithoutDirectory(t *testing.T) {
	n := New(testNodeID, LevelOf(0), Deps{})
	assert.Empty(t, n.Groups(DefaultGroupFilter))
}

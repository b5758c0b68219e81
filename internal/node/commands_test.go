package node

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type commandCase struct {
	name   string
	method string
	args   []interface{}
	run    func(*Node, context.Context) bool
	// hint is the level expected in push mode, nil when the command
	// gives none.
	hint *int
}

func commandCases() []commandCase {
	level := func(v int) *int { return &v }
	return []commandCase{
		{
			name:   "on",
			method: "NodeOn",
			args:   []interface{}{(*int)(nil)},
			run:    (*Node).On,
			hint:   level(255),
		},
		{
			name:   "on_level",
			method: "NodeOn",
			args:   []interface{}{level(128)},
			run:    func(n *Node, ctx context.Context) bool { return n.OnLevel(ctx, 128) },
			hint:   level(128),
		},
		{
			name:   "set_status",
			method: "NodeOn",
			args:   []interface{}{level(255)},
			run:    func(n *Node, ctx context.Context) bool { return n.SetStatus(ctx, 255) },
			hint:   level(255),
		},
		{name: "off", method: "NodeOff", run: (*Node).Off, hint: level(0)},
		{name: "fast_on", method: "NodeFastOn", run: (*Node).FastOn, hint: level(255)},
		{name: "fast_off", method: "NodeFastOff", run: (*Node).FastOff, hint: level(0)},
		{name: "bright", method: "NodeBright", run: (*Node).Bright},
		{name: "dim", method: "NodeDim", run: (*Node).Dim},
		{name: "lock", method: "NodeSecMd", args: []interface{}{"1"}, run: (*Node).Lock},
		{name: "unlock", method: "NodeSecMd", args: []interface{}{"0"}, run: (*Node).Unlock},
	}
}

func (c commandCase) expect(conn *mockConnection) *mock.Call {
	args := append([]interface{}{mock.Anything, testNodeID}, c.args...)
	return conn.On(c.method, args...)
}

func TestCommands_TransportFailure(t *testing.T) {
	for _, tc := range commandCases() {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, LevelOf(77),
				WithAuxProperties([]AuxProperty{{ID: "BATLVL", Value: strPtr("50"), Prec: "0"}}),
			)
			tc.expect(f.conn).Return(nil, errors.New("timeout")).Once()

			ok := tc.run(f.node, context.Background())

			assert.False(t, ok)
			assert.Equal(t, LevelOf(77), f.node.Status())
			assert.Len(t, f.node.AuxProperties(), 1)
			assert.Contains(t, f.logs.String(), `"level":"warn"`)
			f.conn.AssertNotCalled(t, "UpdateNode", mock.Anything, mock.Anything)
		})
	}
}

func TestCommands_PushModeAppliesHint(t *testing.T) {
	for _, tc := range commandCases() {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, LevelOf(77), WithAutoUpdate(true))
			tc.expect(f.conn).Return(accepted, nil).Once()

			var notified []Level
			f.node.Watch(func(_, new Level) { notified = append(notified, new) })

			ok := tc.run(f.node, context.Background())

			assert.True(t, ok)
			if tc.hint == nil {
				assert.Equal(t, LevelOf(77), f.node.Status())
				assert.Empty(t, notified)
			} else {
				assert.Equal(t, LevelOf(*tc.hint), f.node.Status())
				assert.Equal(t, []Level{LevelOf(*tc.hint)}, notified)
			}
			f.conn.AssertNotCalled(t, "UpdateNode", mock.Anything, mock.Anything)
		})
	}
}

func TestCommands_PullModePollsOnce(t *testing.T) {
	for _, tc := range commandCases() {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, LevelOf(0))
			send := tc.expect(f.conn).Return(accepted, nil).Once()
			f.conn.On("UpdateNode", mock.Anything, testNodeID).
				Return([]byte(nodeXML), nil).
				Once().
				NotBefore(send)

			ok := tc.run(f.node, context.Background())

			assert.True(t, ok)
			assert.Equal(t, LevelOf(72), f.node.Status())
		})
	}
}

func TestCommands_PollFailureStillReportsSuccess(t *testing.T) {
	f := newFixture(t, LevelOf(0))
	f.conn.On("NodeOff", mock.Anything, testNodeID).Return(accepted, nil).Once()
	f.conn.On("UpdateNode", mock.Anything, testNodeID).Return(nil, errors.New("reset")).Once()

	assert.True(t, f.node.Off(context.Background()))
	assert.Equal(t, LevelOf(0), f.node.Status())
}

package node

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

type mockConnection struct {
	mock.Mock
}

func bytesArg(args mock.Arguments, i int) []byte {
	if v := args.Get(i); v != nil {
		return v.([]byte)
	}
	return nil
}

func (m *mockConnection) UpdateNode(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeOn(ctx context.Context, id string, level *int) ([]byte, error) {
	args := m.Called(ctx, id, level)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeOff(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeFastOn(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeFastOff(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeBright(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeDim(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) NodeSecMd(ctx context.Context, id string, mode string) ([]byte, error) {
	args := m.Called(ctx, id, mode)
	return bytesArg(args, 0), args.Error(1)
}

func (m *mockConnection) GetNodeNotes(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

const testNodeID = "1A 2B 3C 1"

var accepted = []byte(`<RestResponse succeeded="true"><status>200</status></RestResponse>`)

type fixture struct {
	node *Node
	conn *mockConnection
	logs *bytes.Buffer
}

// newFixture builds a node with no settle delay and a captured JSON log.
func newFixture(t *testing.T, initial Level, opts ...Option) fixture {
	t.Helper()

	conn := &mockConnection{}
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)

	opts = append([]Option{WithSettleDelay(0)}, opts...)
	n := New(testNodeID, initial, Deps{Conn: conn, Logger: &logger}, opts...)

	t.Cleanup(func() { conn.AssertExpectations(t) })
	return fixture{node: n, conn: conn, logs: logs}
}

func strPtr(s string) *string {
	return &s
}

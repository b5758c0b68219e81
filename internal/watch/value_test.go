package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transition struct {
	old, new int
}

func record(v *Value[int]) (*[]transition, func()) {
	var got []transition
	cancel := v.Watch(func(old, new int) {
		got = append(got, transition{old, new})
	})
	return &got, cancel
}

func TestValue_SetNotifiesOncePerTransition(t *testing.T) {
	v := NewValue(0)
	got, _ := record(v)

	assert.True(t, v.Set(255))
	assert.False(t, v.Set(255), "identical write must be a no-op")
	assert.True(t, v.Set(0))

	assert.Equal(t, []transition{{0, 255}, {255, 0}}, *got)
	assert.Equal(t, 0, v.Get())
}

func TestValue_SetSilentlySkipsWatchers(t *testing.T) {
	v := NewValue(10)
	got, _ := record(v)

	assert.True(t, v.SetSilently(20))
	assert.Equal(t, 20, v.Get())
	assert.Empty(t, *got)

	// The next observed transition starts from the silently stored value.
	v.Set(30)
	assert.Equal(t, []transition{{20, 30}}, *got)
}

func TestValue_Cancel(t *testing.T) {
	v := NewValue(0)
	first, cancelFirst := record(v)
	second, _ := record(v)
	require.Equal(t, 2, v.Watchers())

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, v.Watchers())

	v.Set(1)
	assert.Empty(t, *first)
	assert.Equal(t, []transition{{0, 1}}, *second)
}

func TestValue_WatcherMayWrite(t *testing.T) {
	v := NewValue(0)
	var calls int
	v.Watch(func(old, new int) {
		calls++
		if new > 100 {
			v.Set(100)
		}
	})

	v.Set(150)

	assert.Equal(t, 100, v.Get())
	assert.Equal(t, 2, calls)
}

func TestValue_WatchersInRegistrationOrder(t *testing.T) {
	v := NewValue("")
	var order []string
	v.Watch(func(_, _ string) { order = append(order, "a") })
	v.Watch(func(_, _ string) { order = append(order, "b") })

	v.Set("on")

	assert.Equal(t, []string{"a", "b"}, order)
}

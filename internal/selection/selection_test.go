package selection

import (
	"fmt"
	"testing"

	"codelaunch/internal/catalog"
	"codelaunch/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(env types.Environment, names ...string) []types.WorkspaceEntry {
	out := make([]types.WorkspaceEntry, 0, len(names))
	for _, n := range names {
		out = append(out, types.WorkspaceEntry{
			DisplayName: n,
			FileName:    n + " " + env.Marker() + types.WorkspaceSuffix,
			Environment: env,
		})
	}
	return out
}

func makeItems(n int) []Item {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("ws%d", i)
	}
	return Arrange(catalog.Catalog{Native: entries(types.Native, names...)})
}

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Entry.DisplayName)
	}
	return out
}

func TestArrange(t *testing.T) {
	cat := catalog.Catalog{
		Virtualized: entries(types.Virtualized, "v0", "v1", "v2"),
		Native:      entries(types.Native, "n0", "n1", "n2", "n3"),
	}

	items := Arrange(cat)

	assert.Equal(t, []string{"v0", "v2", "v1", "n0", "n2", "n1", "n3"}, labels(items))
	assert.Equal(t, Left, items[0].Column)
	assert.Equal(t, 1, items[1].Row)
	assert.Equal(t, Right, items[2].Column)
	assert.Equal(t, 0, items[2].Row)
	assert.Equal(t, types.Native, items[3].Entry.Environment)
}

func TestArrangeEmpty(t *testing.T) {
	assert.Empty(t, Arrange(catalog.Catalog{}))
}

func TestMoveFocusIsCyclic(t *testing.T) {
	for n := 1; n <= 7; n++ {
		for _, dir := range []types.Direction{types.Forward, types.Backward} {
			for start := 0; start < n; start++ {
				c := New(makeItems(n))
				for i := 0; i < start; i++ {
					c.MoveFocus(types.Forward)
				}
				for i := 0; i < n; i++ {
					c.MoveFocus(dir)
				}
				assert.Equal(t, start, c.Index(), "n=%d start=%d", n, start)
			}
		}
	}
}

func TestMoveFocus(t *testing.T) {
	c := New(makeItems(3))
	assert.Equal(t, 0, c.Index())

	item, ok := c.MoveFocus(types.Backward)
	require.True(t, ok)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, c.Items()[2], item)

	c.MoveFocus(types.Forward)
	assert.Equal(t, 0, c.Index())
}

func TestZeroItems(t *testing.T) {
	c := New(nil)

	_, ok := c.MoveFocus(types.Forward)
	assert.False(t, ok)
	assert.Equal(t, -1, c.Index())

	_, ok = c.Focused()
	assert.False(t, ok)

	called := false
	assert.False(t, c.Activate(func(Item) { called = true }))
	assert.False(t, called)
}

func TestSetItemsKeepsFocusIndex(t *testing.T) {
	c := New(makeItems(5))
	c.MoveFocus(types.Backward)
	require.Equal(t, 4, c.Index())

	c.SetItems(makeItems(3))
	assert.Equal(t, 1, c.Index(), "focus drifts by modulo instead of resetting")

	c.SetItems(nil)
	assert.Equal(t, -1, c.Index())

	c.SetItems(makeItems(5))
	assert.Equal(t, 4, c.Index())
}

func TestActivate(t *testing.T) {
	c := New(makeItems(4))
	c.MoveFocus(types.Forward)

	var got Item
	assert.True(t, c.Activate(func(it Item) { got = it }))
	assert.Equal(t, c.Items()[1], got)
}

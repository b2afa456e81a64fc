package manager

import (
	"testing"

	"github.com/joshuarubin/go-sway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFocus_FocusedWindow(t *testing.T) {
	f, ok := resolveFocus(workspaceTree("eDP-1", false))
	require.True(t, ok)
	assert.Equal(t, "eDP-1", f.outputName)
	assert.False(t, f.workspaceEmpty())
}

func TestResolveFocus_EmptyWorkspace(t *testing.T) {
	f, ok := resolveFocus(workspaceTree("eDP-1", true))
	require.True(t, ok)
	assert.Equal(t, "eDP-1", f.outputName)
	assert.True(t, f.workspaceEmpty())
}

func TestResolveFocus_FloatingWindow(t *testing.T) {
	root := &sway.Node{
		Type: "root",
		Nodes: []*sway.Node{
			{
				Name: "eDP-1",
				Type: "output",
				Nodes: []*sway.Node{
					{
						Name: "1",
						Type: "workspace",
						FloatingNodes: []*sway.Node{
							{Name: "floating window", Type: "floating_con", Focused: true},
						},
					},
				},
			},
		},
	}

	f, ok := resolveFocus(root)
	require.True(t, ok)
	assert.Equal(t, "eDP-1", f.outputName)
	assert.False(t, f.workspaceEmpty())
}

func TestResolveFocus_SecondOutput(t *testing.T) {
	root := &sway.Node{
		Type: "root",
		Nodes: []*sway.Node{
			workspaceTree("eDP-1", false).Nodes[0],
			workspaceTree("HDMI-A-1", true).Nodes[0],
		},
	}
	// Only one node may be focused in a real tree.
	root.Nodes[0].Nodes[0].Nodes[0].Focused = false

	f, ok := resolveFocus(root)
	require.True(t, ok)
	assert.Equal(t, "HDMI-A-1", f.outputName)
	assert.True(t, f.workspaceEmpty())
}

func TestResolveFocus_NoFocus(t *testing.T) {
	_, ok := resolveFocus(&sway.Node{Type: "root"})
	assert.False(t, ok)

	_, ok = resolveFocus(nil)
	assert.False(t, ok)
}

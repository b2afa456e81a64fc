package manager

import (
	"github.com/joshuarubin/go-sway"
)

// focus is a resolved focus position: the focused node, its enclosing
// workspace and the workspace's owning output. Recomputed fresh from the
// tree on every event, never stored.
type focus struct {
	outputName string
	workspace  *sway.Node
	node       *sway.Node
}

// workspaceEmpty reports whether the focused "window" is the workspace node
// itself, which is how the tree looks when the focused workspace has no
// windows.
func (f focus) workspaceEmpty() bool {
	return f.node == f.workspace
}

// resolveFocus walks the tree for the focused node, carrying the enclosing
// output and workspace down the recursion.
func resolveFocus(root *sway.Node) (focus, bool) {
	return findFocused(root, "", nil)
}

func findFocused(n *sway.Node, outputName string, workspace *sway.Node) (focus, bool) {
	if n == nil {
		return focus{}, false
	}

	switch n.Type {
	case "output":
		outputName = n.Name
	case "workspace":
		workspace = n
	}

	if n.Focused {
		return focus{outputName: outputName, workspace: workspace, node: n}, true
	}

	for _, child := range n.Nodes {
		if f, ok := findFocused(child, outputName, workspace); ok {
			return f, true
		}
	}
	for _, child := range n.FloatingNodes {
		if f, ok := findFocused(child, outputName, workspace); ok {
			return f, true
		}
	}
	return focus{}, false
}

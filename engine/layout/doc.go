/*
Package layout computes view geometry incrementally.

Views form a tree of nodes. Every node carries a set of dirty marks
which state that some computed value of the node is stale. Setting a
property of a node marks it and flags its ancestors as having a dirty
descendant. Nodes with pending layout marks are registered with their
tree, sorted by depth.

Once per tick the render loop asks the tree to solve its marks. Solving
is done in sweeps: a forward sweep visits nodes top-down, resolving sizes
which are known from the outside (explicit sizes, sizes locked by a flex
parent). A reverse sweep then visits nodes bottom-up, resolving sizes
which depend on children (wrapped content) and positioning children.
Sweeps are repeated until no layout marks are left.

There are three kinds of containers:

▪︎ Box places each child at its own alignment within the content box.

▪︎ Flex distributes children along a main axis, optionally growing
them by weight, and aligns them on the cross axis.

▪︎ Flow is a flex container which may break its children into
multiple lines.

After solving, Flush walks the dirty paths of the tree, computes world
positions and hands changed nodes to a painter.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.layout'.
func tracer() tracing.Trace {
	return tracing.Select("motif.layout")
}

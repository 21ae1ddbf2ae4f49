// Package quadtree implements the region quadtree used for Barnes-Hut
// gravity approximation: points are inserted one by one, distant subtrees
// are summarized by their total mass and center of mass.
package quadtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
)

// noChild marks an empty quadrant slot.
const noChild = -1

// Node is one square region of the tree. A leaf holds exactly one inserted
// point, an internal node aggregates all points of its subtree.
type Node struct {
	// children holds arena indices of the four quadrants, ordered clockwise
	// starting top-left; noChild for absent quadrants.
	children [4]int
	// Mass is the sum of masses of all points in this node's subtree.
	Mass float64
	// CenterOfMass is the mass-weighted average position of those points.
	// For a leaf it is exactly the position of the single point.
	CenterOfMass vector.Vector
	// center and halfSize describe the geometric region, independent of any
	// mass placed in it.
	center   vector.Vector
	halfSize float64
}

// Center returns the geometric center of the node's region.
func (n Node) Center() vector.Vector { return n.center }

// HalfSize returns half the side length of the node's region.
func (n Node) HalfSize() float64 { return n.halfSize }

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	for _, c := range n.children {
		if c != noChild {
			return false
		}
	}
	return true
}

// quadrant returns the index of the quadrant pos falls into. Points exactly
// on a dividing line fall to the low side.
func (n Node) quadrant(pos vector.Vector) int {
	right, below := pos.X() > n.center.X(), pos.Y() > n.center.Y()
	switch {
	case !right && !below:
		return 0 // top-left
	case right && !below:
		return 1 // top-right
	case right && below:
		return 2 // bottom-right
	default:
		return 3 // bottom-left
	}
}

// quadrantOffset returns the offset of a child region's center from its
// parent's center, for a child half size h. A quadrant index outside 0..3
// means the tree topology is corrupt and there is no way to continue.
func quadrantOffset(quadrant int, h float64) vector.Vector {
	switch quadrant {
	case 0:
		return vector.Vector{-h, -h}
	case 1:
		return vector.Vector{h, -h}
	case 2:
		return vector.Vector{h, h}
	case 3:
		return vector.Vector{-h, h}
	}
	log.Panic().Msgf("invalid quadrant index %d", quadrant)
	return nil
}

func noChildren() [4]int {
	return [4]int{noChild, noChild, noChild, noChild}
}

// Body is one entry of a CollectBodies result: a single inserted point (leaf)
// or a whole subtree lumped into its center of mass.
type Body struct {
	// Index is the arena index of the node this body came from. Callers use
	// it to exclude the query point's own leaf, instead of comparing
	// floating-point positions.
	Index        int
	Mass         float64
	CenterOfMass vector.Vector
}

// QuadTree stores all nodes in a flat arena; indices are stable for the
// lifetime of one build. A tree is built fully before it is queried and
// discarded afterwards, there is no deletion.
type QuadTree struct {
	nodes  []Node
	bounds [2]vector.Vector
	root   int
	size   int
}

// New creates a tree covering the square [center-halfSize, center+halfSize]
// with a single empty leaf as root.
func New(center vector.Vector, halfSize float64) (*QuadTree, error) {
	if halfSize <= 0 {
		return nil, errors.Errorf("half size must be positive, got %v", halfSize)
	}
	return &QuadTree{
		nodes: []Node{{
			children:     noChildren(),
			center:       center,
			CenterOfMass: center,
			halfSize:     halfSize,
		}},
		bounds: [2]vector.Vector{
			{center.X() - halfSize, center.Y() - halfSize},
			{center.X() + halfSize, center.Y() + halfSize},
		},
	}, nil
}

// Root returns a copy of the current root node.
func (t *QuadTree) Root() Node { return t.nodes[t.root] }

// TotalMass returns the sum of all inserted masses.
func (t *QuadTree) TotalMass() float64 { return t.nodes[t.root].Mass }

// Bounds returns the min and max corner of the covered region.
func (t *QuadTree) Bounds() (vector.Vector, vector.Vector) {
	return t.bounds[0], t.bounds[1]
}

// Len returns the number of inserted points.
func (t *QuadTree) Len() int { return t.size }

func (t *QuadTree) inBounds(pos vector.Vector) bool {
	return pos.X() >= t.bounds[0].X() && pos.X() <= t.bounds[1].X() &&
		pos.Y() >= t.bounds[0].Y() && pos.Y() <= t.bounds[1].Y()
}

func weightedAverage(a vector.Vector, massA float64, b vector.Vector, massB float64) vector.Vector {
	return a.Scale(massA).Add(b.Scale(massB)).Scale(1 / (massA + massB))
}

// Insert adds a point mass to the tree, subdividing or expanding the covered
// region as needed. It returns the arena index of the leaf created for the
// point, or -1 if the point was only absorbed into the root aggregate by the
// out-of-bounds expansion shortcut.
//
// Two points at the exact same position cannot be separated by subdivision;
// callers must not insert duplicate positions.
func (t *QuadTree) Insert(pos vector.Vector, mass float64) int {
	t.size++
	if t.inBounds(pos) {
		return t.splitAddRecursive(t.root, pos, mass)
	}
	for !t.inBounds(pos) {
		t.expandTowards(pos)
	}
	// The expanded point is absorbed into the root aggregate without a leaf
	// of its own; a later insertion through this region subdivides normally.
	root := t.nodes[t.root]
	t.nodes[t.root].CenterOfMass = weightedAverage(root.CenterOfMass, root.Mass, pos, mass)
	t.nodes[t.root].Mass = root.Mass + mass
	return noChild
}

// splitAddRecursive walks from nodeIdx towards the point's quadrant, updating
// aggregates on the way down, and places the point in the first empty slot.
// A leaf occupying the target slot is first promoted to an internal node and
// re-parented into its own sub-quadrant.
//
// Slices may be reallocated by append, so nodes are addressed by index and
// needed fields are copied out before any mutation.
func (t *QuadTree) splitAddRecursive(nodeIdx int, pos vector.Vector, mass float64) int {
	node := t.nodes[nodeIdx]
	t.nodes[nodeIdx].CenterOfMass = weightedAverage(node.CenterOfMass, node.Mass, pos, mass)
	t.nodes[nodeIdx].Mass = node.Mass + mass

	childQuadrant := node.quadrant(pos)
	childHalfSize := node.halfSize / 2
	childCenter := node.center.Add(quadrantOffset(childQuadrant, childHalfSize))

	childIdx := node.children[childQuadrant]
	if childIdx == noChild {
		// Empty slot, place the point as a fresh leaf.
		t.nodes = append(t.nodes, Node{
			children:     noChildren(),
			Mass:         mass,
			CenterOfMass: pos,
			center:       childCenter,
			halfSize:     childHalfSize,
		})
		leafIdx := len(t.nodes) - 1
		t.nodes[nodeIdx].children[childQuadrant] = leafIdx
		return leafIdx
	}

	if !t.nodes[childIdx].IsLeaf() {
		return t.splitAddRecursive(childIdx, pos, mass)
	}

	// The slot holds a leaf: promote it to an internal node taking over the
	// leaf's region and aggregates, then move the original leaf into the
	// sub-quadrant its point belongs to. The leaf keeps its arena index.
	original := t.nodes[childIdx]
	t.nodes = append(t.nodes, Node{
		children:     noChildren(),
		Mass:         original.Mass,
		CenterOfMass: original.CenterOfMass,
		center:       original.center,
		halfSize:     original.halfSize,
	})
	internalIdx := len(t.nodes) - 1
	t.nodes[nodeIdx].children[childQuadrant] = internalIdx

	originalQuadrant := t.nodes[internalIdx].quadrant(original.CenterOfMass)
	t.nodes[childIdx].halfSize = original.halfSize / 2
	t.nodes[childIdx].center = original.center.Add(quadrantOffset(originalQuadrant, original.halfSize/2))
	t.nodes[internalIdx].children[originalQuadrant] = childIdx

	return t.splitAddRecursive(internalIdx, pos, mass)
}

// expandTowards doubles the side length of the covered region in the
// direction of pos and re-roots the tree, placing the old root as the
// quadrant diagonally opposite the direction of growth.
func (t *QuadTree) expandTowards(pos vector.Vector) {
	min, max := t.bounds[0], t.bounds[1]
	side := max.X() - min.X()

	growth := t.nodes[t.root].quadrant(pos)
	switch growth {
	case 0:
		min = vector.Vector{min.X() - side, min.Y() - side}
	case 1:
		min = vector.Vector{min.X(), min.Y() - side}
		max = vector.Vector{max.X() + side, max.Y()}
	case 2:
		max = vector.Vector{max.X() + side, max.Y() + side}
	case 3:
		min = vector.Vector{min.X() - side, min.Y()}
		max = vector.Vector{max.X(), max.Y() + side}
	}

	children := noChildren()
	children[(growth+2)%4] = t.root

	oldRoot := t.nodes[t.root]
	t.nodes = append(t.nodes, Node{
		children:     children,
		Mass:         oldRoot.Mass,
		CenterOfMass: oldRoot.CenterOfMass,
		center:       vector.Vector{(min.X() + max.X()) / 2, (min.Y() + max.Y()) / 2},
		halfSize:     side,
	})
	t.root = len(t.nodes) - 1
	t.bounds = [2]vector.Vector{min, max}
}

// theta is the ratio of the node's side length to its distance from pos;
// small values mean the node is far away relative to its size.
func (n Node) theta(pos vector.Vector) float64 {
	return (2 * n.halfSize) / n.CenterOfMass.Sub(pos).Magnitude()
}

// CollectBodies returns the bodies to use for force computation on a point
// at pos. Subtrees with theta below thetaThreshold are returned whole as one
// aggregate body, everything else is expanded down to the leaves. A
// threshold of 0 returns exactly the inserted leaves.
func (t *QuadTree) CollectBodies(pos vector.Vector, thetaThreshold float64) ([]Body, error) {
	if thetaThreshold < 0 {
		return nil, errors.Errorf("theta threshold must be non-negative, got %v", thetaThreshold)
	}
	if t.size == 0 {
		return nil, errors.New("query on a tree without insertions")
	}
	bodies := []Body{}
	toVisit := []int{t.root}
	for len(toVisit) > 0 {
		nodeIdx := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		node := &t.nodes[nodeIdx]
		if node.theta(pos) < thetaThreshold || node.IsLeaf() {
			bodies = append(bodies, Body{Index: nodeIdx, Mass: node.Mass, CenterOfMass: node.CenterOfMass})
			continue
		}
		for _, child := range node.children {
			if child != noChild {
				toVisit = append(toVisit, child)
			}
		}
	}
	return bodies, nil
}

// Dump writes the subtree below nodeIdx to w, one node per line, indented by
// depth. Diagnostic only.
func (t *QuadTree) Dump(w io.Writer, nodeIdx, depth int) {
	node := t.nodes[nodeIdx]
	fmt.Fprintf(w, "%sm:%v, com:(%v, %v)\n",
		strings.Repeat("\t", depth), node.Mass, node.CenterOfMass.X(), node.CenterOfMass.Y())
	for _, child := range node.children {
		if child != noChild {
			t.Dump(w, child, depth+1)
		}
	}
}

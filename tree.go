package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

spatial level-of-detail structure.
point oct-tree aggregating luminosity-weighted star clusters, so the
snapshot renderer can collapse distant clusters into single plots at
galaxy-wide zoom.

*/

type nodekind uint8

// node types
const (
	external nodekind = iota
	internal
)

type octant uint8

// child positions (octants)
// low bit is X axis, high bit is Z axis
// L (0) means < center, H (1) means >= center
const (
	LLL octant = 0b000
	LLH octant = 0b001
	LHL octant = 0b010
	LHH octant = 0b011
	HLL octant = 0b100
	HLH octant = 0b101
	HHL octant = 0b110
	HHH octant = 0b111
)

type nodebound struct {
	center, width mgl64.Vec3
}

// returns the max width among the 3 dimensions.
func (n nodebound) max() float64 {
	return math.Max(n.width[0], math.Max(n.width[1], n.width[2]))
}

// does this bound contain point?
func (n nodebound) contains(point mgl64.Vec3) bool {
	halfwidth := n.width.Mul(0.5)
	return (n.center[0]-halfwidth[0] <= point[0] && point[0] <= n.center[0]+halfwidth[0]) &&
		(n.center[1]-halfwidth[1] <= point[1] && point[1] <= n.center[1]+halfwidth[1]) &&
		(n.center[2]-halfwidth[2] <= point[2] && point[2] <= n.center[2]+halfwidth[2])
}

// scale the width of the bounds.
func (n nodebound) scale(s float64) nodebound {
	n.width = n.width.Mul(s)
	return n
}

// move the center of the bound.
func (n nodebound) translate(tx mgl64.Vec3) nodebound {
	n.center = n.center.Add(tx)
	return n
}

// generate the bounds for an octant of the parent's bounds.
func octantBound(parent nodebound, oct octant) nodebound {
	// each octant is ±1/4 of the parent's width from the parent's center
	tx := mgl64.Vec3{
		parent.width[0] * 0.25 * (float64((oct&LLH)*2) - 1.0),
		parent.width[1] * 0.25 * (float64(((oct&LHL)>>1)*2) - 1.0),
		parent.width[2] * 0.25 * (float64(((oct&HLL)>>2)*2) - 1.0),
	}
	return parent.scale(0.5).translate(tx)
}

// determines which octant (relative to midpoint) in which point belongs.
func octantBits(midpoint, point mgl64.Vec3) octant {
	return octant((^math.Float64bits(point[0]-midpoint[0]) >> 63) |
		(^math.Float64bits(point[1]-midpoint[1])>>63)<<1 |
		(^math.Float64bits(point[2]-midpoint[2])>>63)<<2)
}

// clusterPoint is one star collapsed to the attributes the renderer needs.
type clusterPoint struct {
	pos        mgl64.Vec3
	luminosity float64
	color      mgl64.Vec3
}

type clusterNode struct {
	kind     nodekind
	children []*clusterNode
	point    *clusterPoint // leaf payload

	count      int
	luminosity float64    // total of the subtree
	centroid   mgl64.Vec3 // luminance-weighted position
	color      mgl64.Vec3 // luminance-weighted mean color
	bounds     nodebound
}

// create children nodes with appropriate bounds
func (n *clusterNode) split() {
	n.children = make([]*clusterNode, 8)
	for i := LLL; i <= HHH; i++ {
		n.children[i] = &clusterNode{bounds: octantBound(n.bounds, i)}
	}
}

// accumulate folds p into the node's running luminance-weighted aggregates.
func (n *clusterNode) accumulate(p *clusterPoint) {
	n.count++
	n.luminosity += p.luminosity
	w := p.luminosity / n.luminosity
	n.centroid = n.centroid.Add(p.pos.Sub(n.centroid).Mul(w))
	n.color = n.color.Add(p.color.Sub(n.color).Mul(w))
}

// insert places a point in the tree rooted at this node.
// returns false if the point doesn't belong in this node.
func (n *clusterNode) insert(p *clusterPoint) bool {
	if !n.bounds.contains(p.pos) {
		return false
	}

	switch n.kind {
	case external:
		// empty leaf
		if n.point == nil {
			n.point = p
			n.accumulate(p)
			return true
		}

		// occupied leaf: split into octants, push the existing point
		// down, then fall through to handle the incoming one
		old := n.point
		n.split()
		n.children[octantBits(n.bounds.center, old.pos)].insert(old)
		n.kind = internal
		n.point = nil

		fallthrough

	case internal:
		if n.children[octantBits(n.bounds.center, p.pos)].insert(p) {
			n.accumulate(p)
		}
	}

	return true
}

// aggregate walks the tree emitting one cluster per node whose extent is at
// most maxExtent (or per leaf), collapsing everything below it.
func (n *clusterNode) aggregate(maxExtent float64, emit func(pos mgl64.Vec3, luminosity float64, color mgl64.Vec3, count int)) {
	if n.count == 0 {
		return
	}
	if n.kind == external || n.bounds.max() <= maxExtent {
		emit(n.centroid, n.luminosity, n.color, n.count)
		return
	}
	for i := LLL; i <= HHH; i++ {
		n.children[i].aggregate(maxExtent, emit)
	}
}

// buildClusterTree indexes the star field. Points outside bound (none for
// sane configs) are dropped.
func buildClusterTree(stars []Star, bound nodebound) *clusterNode {
	root := &clusterNode{bounds: bound}
	for i := range stars {
		s := &stars[i]
		root.insert(&clusterPoint{
			pos:        mgl64.Vec3{s.X, s.Y, s.Z},
			luminosity: s.Brightness,
			color:      mgl64.Vec3{s.R, s.G, s.B},
		})
	}
	return root
}

// galaxyBound returns a cubic bound comfortably containing the whole disk,
// including the 1.5x exponential tails and vertical scatter.
func galaxyBound(cfg *GalaxyConfig) nodebound {
	w := cfg.DiskRadius * 4
	return nodebound{width: mgl64.Vec3{w, w, w}}
}

package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is an internal node of the Bounding Volume Hierarchy. Both children are
// always set; a single remaining primitive occupies both slots.
type BVHNode struct {
	Box   core.AABB
	Left  Object
	Right Object
}

// Intersect tests the left subtree first and then the right subtree with the
// bound tightened to the left hit
func (n *BVHNode) Intersect(ray core.Ray, tMax float64) Hit {
	if !n.Box.HitFast(ray, tMax) {
		return NoHit()
	}

	left := n.Left.Intersect(ray, tMax)
	bound := tMax
	if left.Valid {
		bound = left.T
	}
	right := n.Right.Intersect(ray, bound)

	return closer(left, right)
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.Box
}

// Material returns nil, internal nodes have no surface
func (n *BVHNode) Material() material.Material {
	return nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Leaf primitives are owned by the caller; the BVH only owns its internal nodes.
type BVH struct {
	Root    *BVHNode
	objects int
}

// NewBVH builds a BVH over objects, splitting each node at the median along an
// axis drawn from sampler. The objects slice itself is not reordered.
func NewBVH(objects []Object, sampler core.Sampler) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	working := make([]Object, len(objects))
	copy(working, objects)

	return &BVH{Root: buildBVH(working, sampler), objects: len(objects)}
}

// buildBVH sorts objects along a random axis by box minimum and splits at the midpoint
func buildBVH(objects []Object, sampler core.Sampler) *BVHNode {
	axis := sampler.IntN(3)
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Min.Axis(axis) < objects[j].BoundingBox().Min.Axis(axis)
	})

	node := &BVHNode{}
	switch len(objects) {
	case 1:
		node.Left, node.Right = objects[0], objects[0]
	case 2:
		node.Left, node.Right = objects[0], objects[1]
	default:
		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid], sampler)
		node.Right = buildBVH(objects[mid:], sampler)
	}

	node.Box = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// Intersect returns the closest hit with t < tMax
func (bvh *BVH) Intersect(ray core.Ray, tMax float64) Hit {
	if bvh.Root == nil {
		return NoHit()
	}
	return bvh.Root.Intersect(ray, tMax)
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.Box
}

// Depth returns the number of internal node levels; a leaf primitive has depth 0
func (bvh *BVH) Depth() int {
	if bvh.Root == nil {
		return 0
	}
	return depth(bvh.Root)
}

func depth(object Object) int {
	node, ok := object.(*BVHNode)
	if !ok {
		return 0
	}
	return max(depth(node.Left), depth(node.Right)) + 1
}

// Destroy releases the internal nodes bottom-up. Leaf primitives are left untouched.
func (bvh *BVH) Destroy() {
	if bvh.Root != nil {
		destroy(bvh.Root)
	}
	bvh.Root = nil
	bvh.objects = 0
}

func destroy(node *BVHNode) {
	if left, ok := node.Left.(*BVHNode); ok {
		destroy(left)
	}
	if right, ok := node.Right.(*BVHNode); ok {
		destroy(right)
	}
	node.Left, node.Right = nil, nil
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Objects   int // Primitives the tree was built over
	Nodes     int // Internal nodes
	LeafSlots int // Child slots holding a primitive
	MaxDepth  int
}

// Stats walks the tree and collects structure statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Objects: bvh.objects}
	if bvh.Root != nil {
		collectStats(bvh.Root, 1, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(object Object, level int, stats *BVHStats) {
	node, ok := object.(*BVHNode)
	if !ok {
		stats.LeafSlots++
		return
	}

	stats.Nodes++
	if level > stats.MaxDepth {
		stats.MaxDepth = level
	}
	collectStats(node.Left, level+1, stats)
	collectStats(node.Right, level+1, stats)
}

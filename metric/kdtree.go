package metric

import (
	"github.com/anisomesh/anisomesh/vec3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// KdTree is a space-partitioned nearest-cell metric sampler (spec.md
// §4.1), backed by gonum's spatial/kdtree package: sample sites are
// bulk-loaded as kdtree.Points and a query resolves to the tensor
// measured at the nearest site.
type KdTree struct {
	tree    *kdtree.Tree
	tensors map[[3]float64]Tensor
}

// NewKdTree samples field at every site and bulk-loads a gonum kd-tree
// over the sites for nearest-neighbour metric lookup.
func NewKdTree(field func(vec3.Vec) Tensor, sites []vec3.Vec) *KdTree {
	pts := make(kdtree.Points, len(sites))
	tensors := make(map[[3]float64]Tensor, len(sites))
	for i, p := range sites {
		pts[i] = kdtree.Point{p.X, p.Y, p.Z}
		tensors[p.Array()] = field(p)
	}
	return &KdTree{
		tree:    kdtree.New(pts, true),
		tensors: tensors,
	}
}

func (k *KdTree) MetricAt(p vec3.Vec, hint *Hint) (Tensor, error) {
	if len(k.tensors) == 0 {
		return Tensor{}, ErrOutOfDomain
	}
	nearest, _ := k.tree.Nearest(kdtree.Point{p.X, p.Y, p.Z})
	pt, ok := nearest.(kdtree.Point)
	if !ok || len(pt) != 3 {
		return Tensor{}, ErrOutOfDomain
	}
	m, ok := k.tensors[[3]float64{pt[0], pt[1], pt[2]}]
	if !ok {
		return Tensor{}, ErrOutOfDomain
	}
	return m, nil
}

func (k *KdTree) IsMetricWise() bool { return true }

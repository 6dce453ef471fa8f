package topo

// Stats counts every edit Restructure performed, one field per edit kind
// (merge and split both belong to the first phase) (spec.md §8 scenarios
// S3/S4 assert on these).
type Stats struct {
	MergeCount     int
	SplitCount     int
	FaceSwapCount  int
	EdgeSwapCount  int
}

func (s Stats) changed() bool {
	return s.MergeCount > 0 || s.SplitCount > 0 || s.FaceSwapCount > 0 || s.EdgeSwapCount > 0
}

func (s *Stats) add(o Stats) {
	s.MergeCount += o.MergeCount
	s.SplitCount += o.SplitCount
	s.FaceSwapCount += o.FaceSwapCount
	s.EdgeSwapCount += o.EdgeSwapCount
}

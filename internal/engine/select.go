package engine

// selectSmallest переставляет idx так, что первые k элементов - k наименьших
// по less, в произвольном порядке. less - строгий полный порядок.
// Ожидаемое время линейное
func selectSmallest(idx []int, k int, less func(a, b int) bool) {
	lo, hi := 0, len(idx)-1
	target := k - 1
	for lo < hi {
		p := partition(idx, lo, hi, less)
		switch {
		case p == target:
			return
		case p < target:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partition ставит опорный элемент (медиана трёх) на его место в idx[lo:hi+1]
// и возвращает позицию
func partition(idx []int, lo, hi int, less func(a, b int) bool) int {
	mid := lo + (hi-lo)/2
	if less(idx[mid], idx[lo]) {
		idx[mid], idx[lo] = idx[lo], idx[mid]
	}
	if less(idx[hi], idx[lo]) {
		idx[hi], idx[lo] = idx[lo], idx[hi]
	}
	if less(idx[mid], idx[hi]) {
		idx[mid], idx[hi] = idx[hi], idx[mid]
	}

	pivot := idx[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if less(idx[j], pivot) {
			idx[i], idx[j] = idx[j], idx[i]
			i++
		}
	}
	idx[i], idx[hi] = idx[hi], idx[i]
	return i
}

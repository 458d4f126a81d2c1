package order

// mergeSort is a top-down stable merge sort. One scratch buffer of len(s)
// is allocated for the whole run.
func mergeSort[T any](s []T, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}
	buf := make([]T, len(s))
	sortRange(s, buf, cmp)
}

func sortRange[T any](s, buf []T, cmp func(a, b T) int) {
	if len(s) <= 1 {
		return
	}
	mid := len(s) / 2
	sortRange(s[:mid], buf[:mid], cmp)
	sortRange(s[mid:], buf[mid:], cmp)

	// Already ordered across the seam.
	if cmp(s[mid-1], s[mid]) <= 0 {
		return
	}
	merge(s, mid, buf[:len(s)], cmp)
}

// merge combines s[:mid] and s[mid:]. Ties take from the left run first,
// which is what keeps the sort stable.
func merge[T any](s []T, mid int, buf []T, cmp func(a, b T) int) {
	copy(buf, s)
	left, right := buf[:mid], buf[mid:]

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp(left[i], right[j]) <= 0 {
			s[k] = left[i]
			i++
		} else {
			s[k] = right[j]
			j++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

// Ratio returns a similarity measure for two strings in [0, 1]: twice the
// number of matching characters divided by the total length. Matches are
// found greedily around the longest common block, then recursively to its
// left and right, which reproduces the classic sequence-matcher ratio the
// near-duplicate threshold was tuned against.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	b2j := make(map[rune][]int, len(rb))
	for j, r := range rb {
		b2j[r] = append(b2j[r], j)
	}

	matched := matchSize(ra, rb, 0, len(ra), 0, len(rb), b2j)
	return 2.0 * float64(matched) / float64(total)
}

// matchSize sums the sizes of all matching blocks between a[alo:ahi] and
// b[blo:bhi].
func matchSize(a, b []rune, alo, ahi, blo, bhi int, b2j map[rune][]int) int {
	i, j, size := longestMatch(a, blo, bhi, alo, ahi, b2j)
	if size == 0 {
		return 0
	}
	return size +
		matchSize(a, b, alo, i, blo, j, b2j) +
		matchSize(a, b, i+size, ahi, j+size, bhi, b2j)
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] with
// alo <= i < i+size <= ahi and blo <= j < j+size <= bhi. Among equally long
// blocks the earliest in a, then earliest in b, wins, keeping the result
// deterministic for a given input.
func longestMatch(a []rune, blo, bhi, alo, ahi int, b2j map[rune][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return besti, bestj, bestsize
}

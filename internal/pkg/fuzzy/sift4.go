// Package fuzzy - приближённое сравнение строк для выбора между
// равноправными кандидатами
package fuzzy

// DefaultMaxOffset - окно просмотра вперёд, если передан offset <= 0
const DefaultMaxOffset = 5

type offsetPair struct {
	c1, c2 int
	trans  bool
}

// Distance - приближённое расстояние sift4 между s1 и s2: длина большей
// строки минус общая подпоследовательность в окне maxOffset рун, плюс
// число перестановок. Для пустой строки возвращается длина другой.
func Distance(s1, s2 string, maxOffset int) int {
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}

	r1, r2 := []rune(s1), []rune(s2)
	l1, l2 := len(r1), len(r2)
	if l1 == 0 {
		return l2
	}
	if l2 == 0 {
		return l1
	}

	var (
		c1, c2  int
		lcss    int
		localCS int
		trans   int
		offsets []offsetPair
	)

	for c1 < l1 && c2 < l2 {
		if r1[c1] == r2[c2] {
			localCS++
			isTrans := false
			i := 0
			for i < len(offsets) {
				ofs := &offsets[i]
				if c1 <= ofs.c1 || c2 <= ofs.c2 {
					// при пересечении совпадений перестановкой считается то,
					// у которого больше разница смещений
					isTrans = abs(c2-c1) >= abs(ofs.c2-ofs.c1)
					if isTrans {
						trans++
					} else if !ofs.trans {
						ofs.trans = true
						trans++
					}
					break
				}
				if c1 > ofs.c2 && c2 > ofs.c1 {
					offsets = append(offsets[:i], offsets[i+1:]...)
				} else {
					i++
				}
			}
			offsets = append(offsets, offsetPair{c1: c1, c2: c2, trans: isTrans})
		} else {
			lcss += localCS
			localCS = 0
			if c1 != c2 {
				c1 = min(c1, c2)
				c2 = c1
			}
			// курсоры уменьшаются на 1, общий инкремент ниже ставит их
			// на совпавшие руны
			for j := 0; j < maxOffset && (c1+j < l1 || c2+j < l2); j++ {
				if c1+j < l1 && r1[c1+j] == r2[c2] {
					c1 += j - 1
					c2--
					break
				}
				if c2+j < l2 && r1[c1] == r2[c2+j] {
					c1--
					c2 += j - 1
					break
				}
			}
		}

		c1++
		c2++
		if c1 >= l1 || c2 >= l2 {
			lcss += localCS
			localCS = 0
			c1 = min(c1, c2)
			c2 = c1
		}
	}
	lcss += localCS

	return max(l1, l2) - lcss + trans
}

// Closest возвращает индекс ближайшего к target кандидата; при равенстве
// побеждает первый, для пустого списка -1
func Closest(target string, candidates []string) int {
	best, bestDist := -1, 0
	for i, c := range candidates {
		d := Distance(target, c, DefaultMaxOffset)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package service

import "math/rand"

// RandomChooser 返回 [0, n) 内均匀分布的下标
func RandomChooser(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

func pickIndex(choose func(int) int, n int) int {
	if choose == nil || n <= 1 {
		return 0
	}
	idx := choose(n)
	if idx < 0 || idx >= n {
		return 0
	}
	return idx
}

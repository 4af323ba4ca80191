package naming

import "fmt"

// Instance returns the server name for index i (1-based) of a group of count.
func Instance(base string, count, i int) string {
	if count == 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, i)
}

// Indices returns the 1-based indices of a group of count, in creation order.
func Indices(count int) []int {
	if count < 1 {
		return nil
	}
	out := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, i)
	}
	return out
}

package seq_test

import (
	"fmt"

	"github.com/agbru/seqcalc/pkg/seq"
)

func Example() {
	// e = sum of 1/k!, stopped once terms drop below machine epsilon.
	terms := seq.Div[float64](seq.Constant(1.0), seq.Factorial[float64]())
	fmt.Printf("%.12f\n", seq.Sum[float64](seq.Epsilon[float64](terms)))
	// Output: 2.718281828459
}

func ExampleFilter() {
	odd := seq.Filter(func(v int) bool { return v%2 == 1 }, seq.Cursor[int](seq.Counter(0)))
	fmt.Println(seq.Collect[int](seq.Take[int](4, odd)))
	// Output: [1 3 5 7]
}

func ExampleMemoize() {
	m := seq.Memoize[int](seq.Power(2))
	start := m.Clone()
	for range 4 {
		m.Advance()
	}
	fmt.Println(m.Buffered(), m.Current(), m.Buffered())
	fmt.Println(seq.Collect[int](seq.Take[int](5, start)))
	// Output:
	// 4 16 5
	// [1 2 4 8 16]
}

func ExampleCopy() {
	out := make([]int, 3)
	square := func(v int) int { return v * v }
	seq.Copy[int](seq.Apply(square, seq.Cursor[int](seq.Array([]int{1, 2, 3}))), seq.Array(out))
	fmt.Println(out)
	// Output: [1 4 9]
}

package fib_test

import (
	"fmt"

	"github.com/djdv/go-memo/fib"
)

func ExampleRecursion_Compute() {
	recursion := fib.New()
	value, err := recursion.Compute(90)
	if err != nil {
		panic(err) // TODO(Anyone): Handle error.
	}
	fmt.Println(value)
	// Output:
	// 2880067194370816120
}

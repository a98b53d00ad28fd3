//go:build memo_debug

package memo

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}

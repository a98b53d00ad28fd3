//go:build !memo_debug

package memo

const debugging = false

func assert(bool, string) {}

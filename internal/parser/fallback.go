package parser

import "github.com/metcalfc/tome/internal/book"

// blockStrategy is one attempt at recovering blocks from raw input.
// Returning an empty slice means "try the next strategy".
type blockStrategy struct {
	name string
	run  func(input string) []book.Block
}

// runChain tries strategies in order and returns the first non-empty
// result. An empty result from every strategy yields nil; degraded
// output is the caller's responsibility, not an error.
func runChain(input string, strategies []blockStrategy) []book.Block {
	for _, s := range strategies {
		if blocks := s.run(input); len(blocks) > 0 {
			return blocks
		}
	}
	return nil
}

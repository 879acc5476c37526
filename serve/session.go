package serve

import (
	"math/rand/v2"

	"github.com/taylorza/go-lfsr"
)

// newSessionSource returns unique session IDs in the range (0,2^31].
// An LFSR walks every 32-bit value exactly once from a random start, so IDs
// never repeat within a process.
func newSessionSource() <-chan int {
	gen := lfsr.NewLfsr32(rand.Uint32())
	out := make(chan int)

	go func() {
		for {
			id, restarted := gen.Next()
			if restarted {
				panic("exhausted ~32 bits of session IDs")
			}

			if id == 0 || id&0x80000000 == 0x80000000 {
				continue // keep IDs positive and nonzero
			}

			out <- int(id)
		}
	}()

	return out
}

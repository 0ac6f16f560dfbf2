package stagepool_test

import (
	"fmt"

	stagepool "github.com/stagepool/go-stagepool"
)

func Example() {
	pool, err := stagepool.New(stagepool.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer pool.FreeAllocations()

	// Stage vertex data for 1024 faces, 12 elements each.
	v, err := pool.TakeInts(1024 * 12)
	if err != nil {
		// Fall back to an unpooled buffer or skip the update this frame.
		panic(err)
	}
	v[0] = 1

	fmt.Println(len(v), pool.AllocatedBytes())

	// Return the view once the upload is queued; the chunk is recycled.
	pool.PutInts(v)
	fmt.Println(pool.UsedBytes())

	// Output:
	// 12288 49152
	// 0
}

package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	n := 100
	wp := NewWorkerPool[int, int](4, n)
	for i := 0; i < n; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(func(job int) int {
		return job * job
	})
	wp.Wait()

	got := make([]int, 0, n)
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)

	want := make([]int, n)
	for i := range want {
		want[i] = i * i
	}
	assert.Equal(t, want, got)
}

package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		numJobs    int
	}{
		{name: "single worker", numWorkers: 1, numJobs: 10},
		{name: "many workers", numWorkers: 8, numJobs: 100},
		{name: "zero workers becomes one", numWorkers: 0, numJobs: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool[int, int](tt.numWorkers, tt.numJobs)
			wp.Start(func(job int) int { return job * job })
			for i := 0; i < tt.numJobs; i++ {
				wp.AddJob(i)
			}
			wp.Close()
			wp.Wait()

			got := make([]int, 0, tt.numJobs)
			for r := range wp.CollectResults() {
				got = append(got, r)
			}
			sort.Ints(got)

			want := make([]int, tt.numJobs)
			for i := range want {
				want[i] = i * i
			}
			assert.Equal(t, want, got)
		})
	}
}

package loop

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestLoopOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	l := New()
	var seen []int
	for i := 0; i < 3; i++ {
		i := i
		l.Post(func() { seen = append(seen, i) })
	}
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.RunPending())
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 0, l.Len())
}

func TestLoopDefersNestedPosts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	l := New()
	inner := false
	l.Post(func() {
		l.Post(func() { inner = true })
	})
	assert.Equal(t, 1, l.RunPending())
	assert.False(t, inner)
	assert.Equal(t, 1, l.RunPending())
	assert.True(t, inner)
}

func TestLoopConcurrentPost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	l := New()
	count := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Post(func() { count++ })
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, l.RunPending())
	assert.Equal(t, 800, count)
}

func TestLoopRecoversAndCloses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "motif.display")
	defer teardown()
	//
	l := New()
	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })
	assert.Equal(t, 2, l.RunPending())
	assert.True(t, ran)
	l.Close()
	assert.False(t, l.Post(func() {}))
	assert.Equal(t, 0, l.Len())
}

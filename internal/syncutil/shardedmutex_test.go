package syncutil

import (
	"sync"
	"testing"
)

func TestShardedMutex_SerializesSameKey(t *testing.T) {
	var m ShardedMutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("rep-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestShardedMutex_ManyKeys(t *testing.T) {
	var m ShardedMutex
	counters := make(map[string]*int)
	keys := []string{"rep-a", "rep-b", "rep-c", "rep-d"}
	for _, k := range keys {
		counters[k] = new(int)
	}

	var wg sync.WaitGroup
	for _, k := range keys {
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				unlock := m.Lock(key)
				defer unlock()
				*counters[key]++
			}(k)
		}
	}
	wg.Wait()

	for _, k := range keys {
		if *counters[k] != 25 {
			t.Errorf("counter[%s] = %d, want 25", k, *counters[k])
		}
	}
}

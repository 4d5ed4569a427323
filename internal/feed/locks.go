// ABOUTME: Keyed per-channel mutexes serializing mutations on one channel
// ABOUTME: Operations on different channels proceed fully in parallel

package feed

import "sync"

// channelLocks hands out one mutex per channel id. The scope is per channel,
// not global, so refreshes of different channels never block each other.
type channelLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newChannelLocks() *channelLocks {
	return &channelLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// get returns the mutex for the given channel id, creating it on first use.
func (cl *channelLocks) get(channelID string) *sync.Mutex {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	lock, ok := cl.locks[channelID]
	if !ok {
		lock = &sync.Mutex{}
		cl.locks[channelID] = lock
	}
	return lock
}

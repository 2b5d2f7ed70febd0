package common

import (
	"sync"
	"time"
)

// InMemoryRateLimiter is the fallback limiter used when redis is not
// configured. It keeps a sliding window of request timestamps per key and
// prunes idle keys in the background.
type InMemoryRateLimiter struct {
	store              map[string]*[]int64
	mutex              sync.Mutex
	expirationDuration time.Duration
}

func (l *InMemoryRateLimiter) Init(expirationDuration time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.store == nil {
		l.store = make(map[string]*[]int64)
		l.expirationDuration = expirationDuration
		if expirationDuration > 0 {
			go l.clearExpiredItems()
		}
	}
}

func (l *InMemoryRateLimiter) clearExpiredItems() {
	for {
		time.Sleep(l.expirationDuration)
		l.mutex.Lock()
		now := time.Now().Unix()
		for key, timestamps := range l.store {
			if len(*timestamps) == 0 || now-(*timestamps)[len(*timestamps)-1] > int64(l.expirationDuration.Seconds()) {
				delete(l.store, key)
			}
		}
		l.mutex.Unlock()
	}
}

// Request reports whether one more request under key fits into the window of
// maxRequestNum requests per duration seconds, recording it if so.
func (l *InMemoryRateLimiter) Request(key string, maxRequestNum int, duration int64) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	now := time.Now().Unix()
	timestamps, ok := l.store[key]
	if !ok {
		timestamps = &[]int64{}
		l.store[key] = timestamps
	}
	// Drop timestamps that left the window
	idx := 0
	for _, t := range *timestamps {
		if now-t < duration {
			break
		}
		idx++
	}
	*timestamps = (*timestamps)[idx:]
	if len(*timestamps) >= maxRequestNum {
		return false
	}
	*timestamps = append(*timestamps, now)
	return true
}

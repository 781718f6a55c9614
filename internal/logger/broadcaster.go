package logger

import (
	"os"
	"sync"
)

// Broadcaster is an io.Writer that duplicates log output to stdout and to
// every subscribed channel. Slow subscribers are skipped rather than
// blocking the logging path.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan string]bool
}

var Instance = &Broadcaster{
	subscribers: make(map[chan string]bool),
}

func (b *Broadcaster) Write(p []byte) (n int, err error) {
	msg := string(p)

	os.Stdout.Write(p)

	b.mu.Lock()
	for ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()

	return len(p), nil
}

// Subscribe registers a new channel that receives every log line.
func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, 100)
	b.mu.Lock()
	b.subscribers[ch] = true
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the fan-out and closes it.
func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
	close(ch)
}

// Package artifact implements the append-only artifact store shared by the
// build wave and the release stage. Writes are partitioned by producer
// instance key, so two instances never contend on the same entry; a repeated
// write to the same (producer, name) pair is a last-write-wins overwrite.
package artifact

import (
	"sort"
	"sync"
)

// Artifact is one named byte blob produced by a job instance. The bytes are
// opaque to the pipeline; the file name is unique per producer but may
// collide across producers.
type Artifact struct {
	// Producer is the instance key of the job instance that wrote the blob.
	Producer string
	// Name is the artifact's file name.
	Name string
	// Data is the opaque archive content.
	Data []byte
}

type entryKey struct {
	producer string
	name     string
}

// Collector accumulates artifacts from concurrently running producer
// instances. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	entries map[entryKey]Artifact
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{entries: make(map[entryKey]Artifact)}
}

// Put stores a blob under (producer, name). Calling Put twice with the same
// pair overwrites the previous blob.
func (c *Collector) Put(producer, name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entryKey{producer: producer, name: name}] = Artifact{
		Producer: producer,
		Name:     name,
		Data:     data,
	}
}

// All returns a snapshot of every accumulated artifact, sorted by producer
// then name. It is meant to be called after the producing wave has finished;
// nothing streams partial results.
func (c *Collector) All() []Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Artifact, 0, len(c.entries))
	for _, a := range c.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Producer != out[j].Producer {
			return out[i].Producer < out[j].Producer
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of stored artifacts.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

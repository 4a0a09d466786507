package sim

import (
	"math/rand"
	"runtime"
	"sync"
)

// workerScratch holds per-worker reusable state.
type workerScratch struct {
	rng     *rand.Rand
	expired []int
	dropped []int
}

// chunkFunc processes items [start, end) on behalf of a worker.
type chunkFunc func(scratch *workerScratch, start, end int)

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	start, end int
	fn         chunkFunc
}

// parallelState is a pool of persistent workers driven synchronously:
// run fans chunks out and blocks until every chunk has finished.
type parallelState struct {
	scratches  []workerScratch
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// newParallelState sizes the pool. maxWorkers <= 0 uses GOMAXPROCS.
// Each worker gets its own RNG derived from seed.
func newParallelState(maxWorkers, threshold int, seed int64) *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	if maxWorkers > 0 && maxWorkers < numWorkers {
		numWorkers = maxWorkers
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	scratches := make([]workerScratch, numWorkers)
	for i := range scratches {
		scratches[i].rng = rand.New(rand.NewSource(seed + int64(i+1)*0x9e3779b1))
	}
	return &parallelState{
		numWorkers: numWorkers,
		threshold:  threshold,
		scratches:  scratches,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(scratch, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run processes n items with fn and returns once all of them are done.
// Small batches run on the calling goroutine with the first worker's scratch.
func (p *parallelState) run(n int, fn chunkFunc) {
	if n == 0 {
		return
	}
	if n < p.threshold || p.numWorkers == 1 {
		fn(&p.scratches[0], 0, n)
		return
	}

	if !p.running {
		p.startWorkers()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end, fn: fn}
		chunksDispatched++
	}

	// Barrier: every dispatched chunk reports exactly once
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// removalCollector gathers indices of particles to remove from concurrent workers.
// Workers buffer locally and flush once per chunk.
type removalCollector struct {
	mu      sync.Mutex
	expired []int
	dropped []int
}

func (c *removalCollector) reset() {
	c.expired = c.expired[:0]
	c.dropped = c.dropped[:0]
}

// flush appends a worker's buffered indices and clears the buffers.
func (c *removalCollector) flush(scratch *workerScratch) {
	if len(scratch.expired) == 0 && len(scratch.dropped) == 0 {
		return
	}
	c.mu.Lock()
	c.expired = append(c.expired, scratch.expired...)
	c.dropped = append(c.dropped, scratch.dropped...)
	c.mu.Unlock()
	scratch.expired = scratch.expired[:0]
	scratch.dropped = scratch.dropped[:0]
}

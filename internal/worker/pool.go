package worker

import (
	"sync"

	"github.com/staylist/staylist-backend/internal/metrics"
)

type task func()

// Pool runs fire-and-forget jobs (audit writes) off the request path.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

// Submit enqueues a job, dropping it if the queue is full; audit writes are
// best-effort and must never block a request.
func (p *Pool) Submit(f task) {
	select {
	case p.jobs <- f:
		metrics.WorkerQueueDepth.Inc()
	default:
	}
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

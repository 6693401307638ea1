package renderer

import (
	"math/rand"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Y    int
	Seed int64 // Reseeds the worker's generator so a row's noise does not depend on scheduling
}

// RowResult contains a fully rendered row
type RowResult struct {
	Y       int
	Pixels  []core.Vec3
	Samples int
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows with its own generator. Nothing it mutates is shared.
type Worker struct {
	ID          int
	renderer    *Renderer
	random      *rand.Rand
	sampler     core.Sampler
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *Renderer, numWorkers int) *WorkerPool {
	numWorkers = resolveWorkers(numWorkers)

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numWorkers),
		resultQueue: make(chan RowResult, numWorkers),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		// Seeded per row in run
		random := rand.New(rand.NewSource(0))
		worker := &Worker{
			ID:          i,
			renderer:    renderer,
			random:      random,
			sampler:     core.NewRandomSampler(random),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop lets the workers drain the queued rows, then closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row, reporting false once the pool is stopped and drained
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.random.Seed(task.Seed)

		pixels := make([]core.Vec3, w.renderer.config.Width)
		w.renderer.RenderRow(task.Y, w.sampler, pixels)

		w.resultQueue <- RowResult{
			Y:       task.Y,
			Pixels:  pixels,
			Samples: len(pixels) * w.renderer.config.SamplesPerPixel,
		}
	}
}

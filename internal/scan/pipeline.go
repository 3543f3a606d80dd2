package scan

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/ngp/internal/config"
	"github.com/standardbeagle/ngp/internal/debug"
	"github.com/standardbeagle/ngp/internal/matcher"
	"github.com/standardbeagle/ngp/internal/result"
)

// Pipeline wires the producer/consumer scan: the goroutine that calls Run
// acts as both the walker thread and, inline, the splitter (submission
// blocks on the single-file slot before mapping the next file); two
// worker goroutines and one collator goroutine run alongside it. Five
// binary semaphores provide the only cross-goroutine signaling; a single
// RWMutex guards the result store against a concurrent UI read.
type Pipeline struct {
	root    string
	attrs   config.MainSearchAttributes
	matcher matcher.Matcher
	store   *result.Store
	mu      *sync.RWMutex

	newFileSignal *binarySemaphore
	dataReady     [2]*binarySemaphore
	dataConsumed  [2]*binarySemaphore

	current *MappedFile
	done    atomic.Bool
}

// NewPipeline builds a pipeline for one search's root scan. mu is the
// search's data mutex, shared with the UI layer so the UI's reads of the
// store (including the file/line lookup for an editor invocation) never
// interleave with collation.
func NewPipeline(root string, attrs config.MainSearchAttributes, m matcher.Matcher, store *result.Store, mu *sync.RWMutex) *Pipeline {
	return &Pipeline{
		root:          root,
		attrs:         attrs,
		matcher:       m,
		store:         store,
		mu:            mu,
		newFileSignal: newBinarySemaphore(1),
		dataReady:     [2]*binarySemaphore{newBinarySemaphore(0), newBinarySemaphore(0)},
		dataConsumed:  [2]*binarySemaphore{newBinarySemaphore(0), newBinarySemaphore(0)},
	}
}

// Run spawns the two worker goroutines and the collator goroutine, walks
// the directory tree on the calling goroutine, then drains the final
// in-flight file (if any) and tears the pipeline down. It returns once
// every goroutine has exited, whether by completion or context
// cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() { defer wg.Done(); p.runWorker(ctx, 0) }()
	go func() { defer wg.Done(); p.runWorker(ctx, 1) }()
	go func() { defer wg.Done(); p.runCollator(ctx) }()

	walkErr := Walk(ctx, p.root, p.attrs, func(path string) error {
		return p.submit(ctx, path)
	})

	p.drainLast(ctx)
	p.shutdown()
	wg.Wait()

	return walkErr
}

// submit is the splitter step, run inline on the walker goroutine: it
// blocks for the single-file slot, maps the file, and hands it to both
// workers.
func (p *Pipeline) submit(ctx context.Context, path string) error {
	if err := p.newFileSignal.Wait(ctx); err != nil {
		return err
	}

	mf, ok, err := prepareFile(path)
	if err != nil {
		debug.LogScan("skipping %s: %v", path, err)
	}
	if !ok {
		p.newFileSignal.Post()
		return nil
	}

	p.current = mf
	p.dataReady[0].Post()
	p.dataReady[1].Post()
	return nil
}

// drainLast blocks until the last submitted file (if any) has finished
// collating, evidenced by new_file_signal becoming available again, then
// restores it so shutdown's extra posts below are never mistaken for a
// genuine next-file handoff.
func (p *Pipeline) drainLast(ctx context.Context) {
	if err := p.newFileSignal.Wait(ctx); err != nil {
		return
	}
	p.newFileSignal.Post()
}

// shutdown flips the done flag and wakes every goroutine blocked on a
// semaphore so each can observe it and return. No asynchronous
// cancellation is otherwise used: a goroutine only exits at its loop head.
func (p *Pipeline) shutdown() {
	p.done.Store(true)
	p.dataReady[0].Post()
	p.dataReady[1].Post()
	p.dataConsumed[0].Post()
	p.dataConsumed[1].Post()
}

func (p *Pipeline) runWorker(ctx context.Context, id int) {
	for {
		if err := p.dataReady[id].Wait(ctx); err != nil {
			return
		}
		if p.done.Load() {
			return
		}

		mf := p.current
		if id == 0 {
			runWorker0(mf, p.matcher)
		} else {
			runWorker1(mf, p.matcher)
		}
		p.dataConsumed[id].Post()
	}
}

func (p *Pipeline) runCollator(ctx context.Context) {
	for {
		if err := p.dataConsumed[0].Wait(ctx); err != nil {
			return
		}
		if err := p.dataConsumed[1].Wait(ctx); err != nil {
			return
		}
		if p.done.Load() {
			return
		}

		mf := p.current
		collate(mf, p.store, p.mu)
		if err := unmapFile(mf); err != nil {
			debug.LogScan("munmap %s failed: %v", mf.Path, err)
		}
		p.current = nil
		p.newFileSignal.Post()
	}
}

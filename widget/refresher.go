// Package widget runs the countdown refresh loop over an already fetched schedule.
package widget

import (
	"sync"
	"time"

	"gdqwidget/logger"
	"gdqwidget/model"
	"gdqwidget/render"
)

const DefaultInterval = 15 * time.Second

// Publisher receives every rendered view.
type Publisher func(model.View)

// Refresher re-renders the same marathon on every tick. Ticks never fetch; the
// marathon is set once at construction and only read afterwards.
type Refresher struct {
	marathon  model.Marathon
	fetchedAt time.Time
	renderer  *render.Renderer
	interval  time.Duration
	publish   Publisher
	now       func() time.Time
	log       logger.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRefresher(marathon model.Marathon, fetchedAt time.Time, renderer *render.Renderer, interval time.Duration, publish Publisher, log logger.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Refresher{
		marathon:  marathon,
		fetchedAt: fetchedAt,
		renderer:  renderer,
		interval:  interval,
		publish:   publish,
		now:       time.Now,
		log:       log,
		stopChan:  make(chan struct{}),
	}
}

// SetClock replaces time.Now. Must be called before Start.
func (r *Refresher) SetClock(now func() time.Time) {
	r.now = now
}

// Start renders once immediately and then on every tick until Stop.
func (r *Refresher) Start() {
	r.wg.Add(1)
	go r.run()
}

func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	r.log.Info("Refresher stopped.")
}

func (r *Refresher) run() {
	defer r.wg.Done()

	r.Refresh()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Refresh()
		case <-r.stopChan:
			return
		}
	}
}

// Refresh renders the current window and hands it to the publisher.
func (r *Refresher) Refresh() model.View {
	view := r.renderer.Render(r.marathon, r.fetchedAt, r.now())
	if r.publish != nil {
		r.publish(view)
	}
	return view
}

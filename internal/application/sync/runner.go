package sync

import (
	"context"
	"time"
)

// Runner serializa los pushes: una única goroutine atiende el ticker y el
// canal de disparo, de modo que nunca hay dos pushes en vuelo.
type Runner struct {
	rec      *Reconciler
	interval time.Duration
	trigger  chan struct{}
}

// NewRunner construye el runner con el intervalo periódico dado.
func NewRunner(rec *Reconciler, interval time.Duration) *Runner {
	return &Runner{
		rec:      rec,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger solicita un push inmediato. Los disparos mientras hay un push en
// curso se funden en uno solo (el canal tiene capacidad 1).
func (r *Runner) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Start lanza la goroutine de sincronización. Se detiene al cancelar ctx.
// Con intervalo cero o negativo no hay push periódico: solo el canal de
// disparo mueve el ciclo.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		var tick <-chan time.Time
		if r.interval > 0 {
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()
			tick = ticker.C
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			case <-r.trigger:
			}
			if err := r.rec.Push(ctx); err != nil {
				r.rec.log.Warn().Err(err).Msg("push de sincronización fallido, se reintentará")
			}
		}
	}()
}

package worker

import (
	"context"
	"sync"

	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

// StockPusher es el cliente que efectivamente publica el stock (Mercado Libre).
type StockPusher interface {
	UpdateStock(ctx context.Context, productID string, newStock int64) error
}

var _ ledger.StockNotifier = (*StockSync)(nil)

type stockUpdate struct {
	ProductID string
	NewStock  int64
}

// StockSync desacopla el motor de ventas del marketplace: encola las
// notificaciones de stock y un pool de workers las publica en segundo plano.
// La cola nunca bloquea al motor; si está llena, la notificación se descarta
// y se deja registro (el stock remoto converge con la próxima operación).
type StockSync struct {
	pusher  StockPusher
	log     *logger.Logger
	queue   chan stockUpdate
	workers int
	wg      sync.WaitGroup
	cancel  context.CancelFunc

	mu     sync.Mutex // protege queue frente al cierre
	closed bool
}

// NewStockSync construye el sincronizador. pusher nil = modo solo local
// (todo se descarta en silencio).
func NewStockSync(pusher StockPusher, log *logger.Logger, workers, queueSize int) *StockSync {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &StockSync{
		pusher:  pusher,
		log:     log,
		queue:   make(chan stockUpdate, queueSize),
		workers: workers,
	}
}

// Start lanza los workers. Cada uno consume de la cola hasta que se cierre o
// el contexto termine.
func (s *StockSync) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.run(ctx, i)
	}
	s.log.Info().Int("workers", s.workers).Msg("sincronizador de stock iniciado")
}

// Stop cierra la cola, espera a que los workers terminen lo pendiente y corta.
// Es idempotente y seguro frente a notificaciones concurrentes: lo que llegue
// después del cierre se descarta.
func (s *StockSync) Stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	if s.cancel != nil {
		s.cancel()
	}
}

// NotifyStockChange encola sin bloquear. Nunca devuelve error: el contrato con
// el motor es fire-and-forget.
func (s *StockSync) NotifyStockChange(productID string, newStock int64) {
	if s.pusher == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- stockUpdate{ProductID: productID, NewStock: newStock}:
	default:
		s.log.Warn().Str("product_id", productID).Msg("cola de sincronización llena, notificación descartada")
	}
}

func (s *StockSync) run(ctx context.Context, id int) {
	defer s.wg.Done()
	for update := range s.queue {
		if err := s.pusher.UpdateStock(ctx, update.ProductID, update.NewStock); err != nil {
			// Best-effort: se registra y se sigue, nunca se reintenta aquí.
			s.log.Error().
				Err(err).
				Int("worker", id).
				Str("product_id", update.ProductID).
				Int64("new_stock", update.NewStock).
				Msg("fallo al publicar stock en marketplace")
		}
	}
}

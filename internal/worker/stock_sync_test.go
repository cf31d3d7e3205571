package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/worker"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

type recordingPusher struct {
	mu      sync.Mutex
	pushed  map[string]int64
	failAll bool
}

func (p *recordingPusher) UpdateStock(_ context.Context, productID string, newStock int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failAll {
		return errors.New("marketplace caído")
	}
	if p.pushed == nil {
		p.pushed = make(map[string]int64)
	}
	p.pushed[productID] = newStock
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func TestStockSync_PublicaNotificaciones(t *testing.T) {
	pusher := &recordingPusher{}
	ss := worker.NewStockSync(pusher, testLogger(), 2, 16)
	ss.Start(context.Background())

	ss.NotifyStockChange("p1", 8)
	ss.NotifyStockChange("p2", 3)
	ss.Stop() // drena la cola antes de volver

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	require.Len(t, pusher.pushed, 2)
	assert.Equal(t, int64(8), pusher.pushed["p1"])
	assert.Equal(t, int64(3), pusher.pushed["p2"])
}

// TestStockSync_SinPusherDescarta cubre el modo solo local: sin cliente de
// marketplace configurado, notificar no encola ni bloquea.
func TestStockSync_SinPusherDescarta(t *testing.T) {
	ss := worker.NewStockSync(nil, testLogger(), 1, 1)
	ss.Start(context.Background())

	for i := 0; i < 100; i++ {
		ss.NotifyStockChange("p1", int64(i))
	}
	ss.Stop()
}

// TestStockSync_NotificarTrasStopDescarta cubre el apagado: notificar después
// de Stop no entra en pánico ni encola, y un segundo Stop es inocuo.
func TestStockSync_NotificarTrasStopDescarta(t *testing.T) {
	pusher := &recordingPusher{}
	ss := worker.NewStockSync(pusher, testLogger(), 1, 16)
	ss.Start(context.Background())
	ss.Stop()

	ss.NotifyStockChange("p1", 8)
	ss.Stop()

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	assert.Empty(t, pusher.pushed)
}

// TestStockSync_ErrorDelPusherNoDetiene verifica el contrato best-effort: un
// fallo al publicar se registra y el worker sigue vivo.
func TestStockSync_ErrorDelPusherNoDetiene(t *testing.T) {
	pusher := &recordingPusher{failAll: true}
	ss := worker.NewStockSync(pusher, testLogger(), 1, 16)
	ss.Start(context.Background())

	ss.NotifyStockChange("p1", 5)
	ss.NotifyStockChange("p2", 7)
	ss.Stop()
	// Si llegamos acá sin pánico ni deadlock, el contrato se cumple.
}

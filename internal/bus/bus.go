package bus

import (
	"context"
	"sync"

	"review-metrics-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// HandlerFunc обрабатывает одно событие шины.
type HandlerFunc func(ctx context.Context, event domain.Event) error

// Bus — внутрипроцессная шина событий: буферизованная очередь и пул
// воркеров, доставляющих события подписчикам по виду события.
// Ошибки обработчиков не проглатываются: они логируются на уровне error,
// политика повторной доставки остается за транспортом.
type Bus struct {
	logger *logrus.Logger
	queue  chan domain.Event

	// handlersMu отделен от mu: воркеры читают подписки во время
	// дренажа очереди и не должны зависеть от блокировки Close
	handlersMu sync.RWMutex
	handlers   map[string][]HandlerFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New создает шину с заданным числом воркеров и размером очереди.
func New(logger *logrus.Logger, workers, queueSize int) *Bus {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	b := &Bus{
		logger:   logger,
		queue:    make(chan domain.Event, queueSize),
		handlers: make(map[string][]HandlerFunc),
	}

	b.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go b.worker()
	}

	return b
}

// Subscribe регистрирует обработчик для вида события.
// Вызывается при сборке приложения, до публикации событий.
func (b *Bus) Subscribe(kind string, handler HandlerFunc) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Publish ставит событие в очередь доставки.
// Возвращает ErrBusClosed после Close и ошибку контекста при отмене.
func (b *Bus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return domain.ErrBusClosed
	}

	select {
	case b.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close прекращает прием событий, дожидается доставки уже
// опубликованных и останавливает воркеры.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Bus) worker() {
	defer b.wg.Done()

	for event := range b.queue {
		b.dispatch(event)
	}
}

func (b *Bus) dispatch(event domain.Event) {
	b.handlersMu.RLock()
	handlers := b.handlers[event.Kind()]
	b.handlersMu.RUnlock()

	if len(handlers) == 0 {
		b.logger.WithField("event_kind", event.Kind()).Warn("No handler registered for event")
		return
	}

	for _, handler := range handlers {
		if err := handler(context.Background(), event); err != nil {
			b.logger.WithFields(logrus.Fields{
				"event_kind": event.Kind(),
				"error":      err.Error(),
			}).Error("Event handler failed")
		}
	}
}

package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrModelUnavailable — модель эмбеддингов не удалось загрузить.
// Фатально для всей подсистемы матчинга, внутри ядра не ретраится.
var ErrModelUnavailable = errors.New("embedding model unavailable")

// Encoder is a minimal abstraction over a pretrained sentence-embedding model.
// It intentionally hides concrete providers to preserve dependency direction.
type Encoder interface {
	// Encode maps text to a fixed-length dense vector. Deterministic for a
	// fixed model version.
	Encode(ctx context.Context, text string) ([]float32, error)
	// Dimension returns vector length, 0 until the model produced a vector.
	Dimension() int
}

// Lazy откладывает создание энкодера до первого вызова Encode.
// Инициализация идемпотентна и защищена sync.Once: конкурентные запросы
// могут гоняться за первый вызов, загрузка выполнится ровно один раз.
// Ошибка загрузки запоминается и возвращается всем последующим вызовам.
type Lazy struct {
	open func() (Encoder, error)

	once sync.Once
	enc  Encoder
	err  error
}

// NewLazy wraps an encoder constructor into a lazily-initialized Encoder.
func NewLazy(open func() (Encoder, error)) *Lazy {
	return &Lazy{open: open}
}

func (l *Lazy) init() {
	l.once.Do(func() {
		enc, err := l.open()
		if err != nil {
			l.err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
			return
		}
		l.enc = enc
	})
}

func (l *Lazy) Encode(ctx context.Context, text string) ([]float32, error) {
	l.init()
	if l.err != nil {
		return nil, l.err
	}
	return l.enc.Encode(ctx, text)
}

func (l *Lazy) Dimension() int {
	if l.enc == nil {
		return 0
	}
	return l.enc.Dimension()
}

package availability

import (
	"context"
	"sync"
)

// Tracker выдаёт поколения запросов доступности по ключу сессии
// Новый запрос с другим тегом (датой) отменяет контексты всех незавершённых запросов
// с тем же ключом, а их результаты считаются устаревшими. Запросы с одинаковым тегом
// друг друга не вытесняют.
type Tracker struct {
	mu   sync.Mutex
	seq  uint64
	live map[string][]*generation
}

type generation struct {
	id         uint64
	tag        string
	cancel     context.CancelFunc
	superseded bool
}

// Ticket поколение одного запроса
type Ticket struct {
	tracker *Tracker
	key     string
	gen     *generation
}

// NewTracker создаёт пустой трекер
func NewTracker() *Tracker {
	return &Tracker{live: make(map[string][]*generation)}
}

// Begin регистрирует новый запрос для ключа и возвращает его контекст
// Вызывающий обязан вызвать Ticket.Done по завершении.
func (t *Tracker) Begin(ctx context.Context, key, tag string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, prev := range t.live[key] {
		if prev.tag != tag && !prev.superseded {
			prev.superseded = true
			prev.cancel()
		}
	}

	t.seq++
	gen := &generation{id: t.seq, tag: tag, cancel: cancel}
	t.live[key] = append(t.live[key], gen)

	return ctx, Ticket{tracker: t, key: key, gen: gen}
}

// IsCurrent возвращает false, если после этого запроса был начат запрос с другим тегом
func (tk Ticket) IsCurrent() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	return !tk.gen.superseded
}

// Done освобождает контекст запроса и забывает его поколение
func (tk Ticket) Done() {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	tk.gen.cancel()

	gens := tk.tracker.live[tk.key]
	for i, g := range gens {
		if g.id == tk.gen.id {
			gens = append(gens[:i], gens[i+1:]...)
			break
		}
	}
	if len(gens) == 0 {
		delete(tk.tracker.live, tk.key)
		return
	}
	tk.tracker.live[tk.key] = gens
}

// Package lendqueue records borrow/return events off the request path. The
// lending_events table is an append-only audit trail: replaying it against a
// book's starting stock must reproduce the current quantity, which gives an
// offline check of the conservation invariant.
package lendqueue

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	ActionBorrow = "borrow"
	ActionReturn = "return"
)

type event struct {
	bookID     string
	userEmail  string
	action     string
	occurredAt time.Time
}

var (
	dbRef *sql.DB
	ch    chan event
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
)

// Start spins up N workers with a buffered channel.
// Suggested: buf=10000, workers=2
func Start(db *sql.DB, buf, workers int) {
	once.Do(func() {
		dbRef = db
		ch = make(chan event, buf)
		done = make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go worker()
		}
	})
}

// Enqueue queues a lending event without blocking. If the buffer is full, the
// event is dropped; the ledger and book row are the source of truth, this
// trail is best-effort.
func Enqueue(bookID, userEmail, action string) {
	if bookID == "" || ch == nil {
		return
	}
	ev := event{bookID: bookID, userEmail: userEmail, action: action, occurredAt: time.Now().UTC()}
	select {
	case ch <- ev:
	default:
		// buffer full; drop
	}
}

// Shutdown signals workers to stop, flushes remaining events, and waits.
func Shutdown() {
	if done == nil {
		return
	}
	close(done)
	wg.Wait()
}

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	writeTO    = 500 * time.Millisecond
	insertTmpl = `INSERT INTO lending_events (book_id, user_email, action, occurred_at) VALUES %s`
)

func worker() {
	defer wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]event, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := insertBatch(batch); err != nil {
			log.Printf("[LENDQUEUE] dropped batch of %d: %v", len(batch), err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-done:
			// drain quickly then flush
			for {
				select {
				case ev := <-ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

func insertBatch(batch []event) error {
	if len(batch) == 0 {
		return nil
	}
	args := make([]any, 0, len(batch)*4)
	vals := make([]byte, 0, len(batch)*20)
	for i, ev := range batch {
		if i > 0 {
			vals = append(vals, ',')
		}
		p := 4 * i
		vals = append(vals, fmt.Sprintf("($%d,$%d,$%d,$%d)", p+1, p+2, p+3, p+4)...)
		args = append(args, ev.bookID, ev.userEmail, ev.action, ev.occurredAt)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTO)
	defer cancel()
	_, err := dbRef.ExecContext(ctx, fmt.Sprintf(insertTmpl, string(vals)), args...)
	return err
}

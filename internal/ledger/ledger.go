// Package ledger manages the append-only digest-chained transaction log.
package ledger

import (
	"fmt"
	"time"

	"github.com/csagrp6/chainbank/internal/domain"
	"github.com/csagrp6/chainbank/pkg/checksumpkg"
)

// Ledger is an append-only sequence of blocks. Each block carries the digest
// of its predecessor's data, so the chain grows by one link per committed
// action and editing any persisted block breaks every link after it.
//
// Ledger is not safe for concurrent use; callers serialize access.
type Ledger struct {
	blocks []domain.Block
	length int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append creates the next block describing data and links it after the
// current tail. It always succeeds; data is not validated and may be empty.
func (l *Ledger) Append(data string) domain.Block {
	prev := domain.GenesisHash
	if n := len(l.blocks); n > 0 {
		prev = l.blocks[n-1].Hash
	}

	b := domain.Block{
		Index:         l.length,
		TransactionID: fmt.Sprintf("%s%d", domain.TransactionIDPrefix, l.length),
		PreviousHash:  prev,
		Timestamp:     time.Now(),
		Data:          data,
		Hash:          checksumpkg.Digest(data),
	}

	l.length++
	l.blocks = append(l.blocks, b)

	return b
}

// Blocks returns a snapshot of all blocks in append order, genesis first.
func (l *Ledger) Blocks() []domain.Block {
	out := make([]domain.Block, len(l.blocks))
	copy(out, l.blocks)

	return out
}

// Len returns the ledger length counter used to index the next block.
func (l *Ledger) Len() int {
	return l.length
}

// Restore rebuilds the chain from persisted rows in their persisted order.
// Indices, hashes and timestamps are kept verbatim, and the length counter
// advances to max(index)+1 so subsequent appends continue the sequence.
func (l *Ledger) Restore(rows []domain.Block) {
	for _, b := range rows {
		l.blocks = append(l.blocks, b)

		if b.Index+1 > l.length {
			l.length = b.Index + 1
		}
	}
}

package domain

import "time"

// GenesisHash is the previous-hash sentinel carried by the first ledger block.
const GenesisHash = "0"

// TransactionIDPrefix is prepended to a block index to form its transaction ID.
const TransactionIDPrefix = "TRX-"

// Block is one immutable entry of the chained ledger. It describes a single
// committed balance-affecting action and carries the digest of its
// predecessor, so any later edit of an entry breaks the chain after it.
//
// Hash covers Data only. It is a checksum for change detection, not a
// security property.
type Block struct {
	Index         int       `json:"index"`
	TransactionID string    `json:"transaction_id"`
	PreviousHash  string    `json:"previous_hash"`
	Timestamp     time.Time `json:"timestamp"`
	Data          string    `json:"data"`
	Hash          string    `json:"hash"`
}

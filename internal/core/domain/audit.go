package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditAction names the operation recorded by an audit fact.
type AuditAction string

const (
	AuditCreate     AuditAction = "create"
	AuditUpdate     AuditAction = "update"
	AuditCancel     AuditAction = "cancel"
	AuditPost       AuditAction = "post"
	AuditReverse    AuditAction = "reverse"
	AuditDeactivate AuditAction = "deactivate"
	AuditActivate   AuditAction = "activate"
	AuditDelete     AuditAction = "delete"
)

// Audit entity types.
const (
	EntityJournalEntry = "journal_entry"
	EntityAccount      = "account"
)

// AuditFact is a structured record of a completed ledger operation.
type AuditFact struct {
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	TenantID   string         `json:"tenantId"`
	ActorID    string         `json:"actorId"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Ledger event names.
const (
	EventEntryPosted   = "journal_entry_posted"
	EventEntryReversed = "journal_entry_reversed"
)

// LedgerEvent is the notification emitted after a posting or reversal commits.
type LedgerEvent struct {
	Name        string          `json:"name"`
	TenantID    string          `json:"tenantId"`
	ActorID     string          `json:"actorId"`
	EntryID     string          `json:"entryId"`
	EntryNumber int64           `json:"entryNumber"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

package event

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status mirrors the publication state of an event record.
type Status string

const (
	StatusPublish Status = "publish"
	StatusDraft   Status = "draft"
	StatusTrash   Status = "trash"
)

// Event represents a remindable event.
// Exactly one of StartDate/MonthDay is authoritative, selected by IsRecurring.
type Event struct {
	ID               int64
	Title            string
	Content          string // HTML body as written in the editor
	IsRecurring      bool
	StartDate        string // "2006-01-02" or "2006-01-02T15:04", used when not recurring
	MonthDay         string // "01-02", used when recurring
	RemindersEnabled bool
	RecipientEmails  []string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func emailValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// IsValidEmail reports whether addr is a syntactically valid e-mail address.
func IsValidEmail(addr string) bool {
	return emailValidator().Var(addr, "required,email") == nil
}

// ValidRecipients returns the de-duplicated, trimmed recipient addresses that
// pass validation. Invalid entries are dropped silently.
func (e *Event) ValidRecipients() []string {
	seen := make(map[string]struct{}, len(e.RecipientEmails))
	out := make([]string, 0, len(e.RecipientEmails))
	for _, raw := range e.RecipientEmails {
		addr := strings.TrimSpace(raw)
		if addr == "" || !IsValidEmail(addr) {
			continue
		}
		key := strings.ToLower(addr)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}

// ParseRecipientList splits operator input (one address per line, commas
// tolerated) into a list of addresses. Validation happens in ValidRecipients.
func ParseRecipientList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

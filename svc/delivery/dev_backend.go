package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// DevBackend implements messaging.Backend for local development.
// Each payload is written as a JSON file to dir instead of being delivered.
type DevBackend struct {
	dir string
	now func() time.Time
}

var _ messaging.Backend = (*DevBackend)(nil)

// NewDevBackend creates a backend that saves payloads to dir.
// The directory is created on first use.
func NewDevBackend(dir string) *DevBackend {
	return &DevBackend{dir: dir, now: time.Now}
}

// devRecord is what ends up on disk.
type devRecord struct {
	MessageID string            `json:"message_id"`
	Timestamp string            `json:"timestamp"`
	Operation string            `json:"operation"`
	Kind      string            `json:"kind"`
	Payload   messaging.Payload `json:"payload"`
}

func (d *DevBackend) Send(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	return d.write("send", p)
}

func (d *DevBackend) Schedule(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	if !p.Scheduled() {
		return messaging.Receipt{}, fmt.Errorf("%w: schedule without a scheduled time", ErrUnsupportedPayload)
	}
	return d.write("schedule", p)
}

func (d *DevBackend) write(op string, p messaging.Payload) (messaging.Receipt, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return messaging.Receipt{}, fmt.Errorf("%w: failed to create directory: %v", messaging.ErrTransportFailure, err)
	}

	now := d.now()
	rec := devRecord{
		MessageID: uuid.New().String(),
		Timestamp: now.Format(time.RFC3339),
		Operation: op,
		Kind:      p.Kind.String(),
		Payload:   p,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return messaging.Receipt{}, fmt.Errorf("%w: failed to marshal payload: %v", messaging.ErrTransportFailure, err)
	}

	name := fmt.Sprintf("%s_%s_%s_%s.json", now.Format("2006_01_02_150405"), op, rec.Kind, rec.MessageID[:8])
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return messaging.Receipt{}, fmt.Errorf("%w: failed to write payload file: %v", messaging.ErrTransportFailure, err)
	}

	r := messaging.Receipt{
		Success:       true,
		Message:       "saved to " + name,
		MessageID:     rec.MessageID,
		ScheduledTime: p.ScheduledTime,
	}
	r.TotalRecipients, r.EmailRecipients, r.SMSRecipients = countRecipients(p)
	return r, nil
}

// countRecipients counts addresses known from the payload alone.
// Category payloads count as zero: their membership is resolved by the backend.
func countRecipients(p messaging.Payload) (total, email, sms int) {
	switch p.Kind {
	case messaging.KindIndividual:
		total = 1
	case messaging.KindMultiple:
		total = len(p.Recipients)
	}
	if p.Channel.IncludesEmail() {
		email = total
	}
	if p.Channel.IncludesSMS() {
		sms = total
	}
	return total, email, sms
}

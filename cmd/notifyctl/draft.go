package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

var (
	ErrNoRecipient        = errors.New("draft: recipient needs one of contact, category, contacts or all")
	ErrAmbiguousRecipient = errors.New("draft: recipient sets more than one of contact, category, contacts and all")
)

// draftFile is the YAML form of a message draft.
//
//	recipient:
//	  contacts: [42, 9]
//	channel: both
//	subject: Rehearsal moved
//	content: Rehearsal starts at 19:00 tonight.
//	scheduled_time: 2025-03-10T18:00:00
type draftFile struct {
	Recipient     recipientFile `yaml:"recipient"`
	Channel       string        `yaml:"channel"`
	Subject       string        `yaml:"subject"`
	Content       string        `yaml:"content"`
	Sender        string        `yaml:"sender"`
	ScheduledTime string        `yaml:"scheduled_time"`
	Attachments   []string      `yaml:"attachments"`
}

type recipientFile struct {
	Contact  *int64  `yaml:"contact"`
	Category *int64  `yaml:"category"`
	Contacts []int64 `yaml:"contacts"`
	All      bool    `yaml:"all"`
}

func (r recipientFile) spec() (messaging.RecipientSpec, error) {
	var (
		spec messaging.RecipientSpec
		set  int
	)
	if r.Contact != nil {
		spec = messaging.ToContact(*r.Contact)
		set++
	}
	if r.Category != nil {
		spec = messaging.ToCategory(*r.Category)
		set++
	}
	if r.Contacts != nil {
		spec = messaging.ToContacts(r.Contacts...)
		set++
	}
	if r.All {
		spec = messaging.ToAll()
		set++
	}
	switch set {
	case 0:
		return nil, ErrNoRecipient
	case 1:
		return spec, nil
	}
	return nil, ErrAmbiguousRecipient
}

func (f draftFile) toDraft() (messaging.Draft, error) {
	spec, err := f.Recipient.spec()
	if err != nil {
		return messaging.Draft{}, err
	}
	return messaging.Draft{
		Recipient:     spec,
		Channel:       messaging.Channel(f.Channel),
		Subject:       f.Subject,
		Content:       f.Content,
		Sender:        f.Sender,
		ScheduledTime: f.ScheduledTime,
		Attachments:   f.Attachments,
	}, nil
}

func decodeDraft(r io.Reader) (messaging.Draft, error) {
	var f draftFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return messaging.Draft{}, ErrNoRecipient
		}
		return messaging.Draft{}, fmt.Errorf("draft: %w", err)
	}
	return f.toDraft()
}

// loadDraft reads a draft from path, or from stdin when path is "-".
func loadDraft(path string, stdin io.Reader) (messaging.Draft, error) {
	if path == "-" {
		return decodeDraft(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return messaging.Draft{}, fmt.Errorf("draft: %w", err)
	}
	defer f.Close()
	return decodeDraft(f)
}

package mail

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DemoContacts stand in for MAIL_CONTACTS when the in-memory mailbox runs
// without configured contacts.
var DemoContacts = []string{
	"info@deltadentalinsurance.com",
	"claims@cignadental.com",
	"support@metlifedental.com",
}

// SentMessage is a message recorded by FakeMailbox.
type SentMessage struct {
	From string
	Message
	SentAt time.Time
}

// FakeMailbox records messages instead of delivering them.
type FakeMailbox struct {
	session
	source   SuggestionSource
	contacts []string

	sentMu sync.Mutex
	sent   []SentMessage
}

func NewFakeMailbox(source SuggestionSource, contacts []string) *FakeMailbox {
	return &FakeMailbox{
		session:  session{provider: "fake", now: time.Now},
		source:   source,
		contacts: contacts,
	}
}

func (f *FakeMailbox) Connect(_ context.Context, address string) (Status, error) {
	return f.connect(address)
}

func (f *FakeMailbox) Disconnect(_ context.Context) (Status, error) {
	return f.disconnect(), nil
}

func (f *FakeMailbox) Status(_ context.Context) Status {
	return f.status()
}

func (f *FakeMailbox) Suggestions(ctx context.Context, query string) ([]string, error) {
	return suggest(ctx, f.source, f.contacts, query)
}

func (f *FakeMailbox) Send(ctx context.Context, msg Message) error {
	from, err := f.sender()
	if err != nil {
		return err
	}
	if err := msg.prepare(); err != nil {
		return err
	}

	f.sentMu.Lock()
	f.sent = append(f.sent, SentMessage{From: from, Message: msg, SentAt: f.now()})
	f.sentMu.Unlock()

	zerolog.Ctx(ctx).Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("fake mailbox recorded message")
	return nil
}

// Sent returns a copy of the recorded messages.
func (f *FakeMailbox) Sent() []SentMessage {
	f.sentMu.Lock()
	defer f.sentMu.Unlock()
	out := make([]SentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

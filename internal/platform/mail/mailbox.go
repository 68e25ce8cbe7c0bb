// Package mail is the clinic mailbox: a connected sender address, recipient
// suggestions and outbound delivery. FakeMailbox keeps everything in memory;
// SendGridMailbox delivers through SendGrid.
package mail

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotConnected   = errors.New("mailbox not connected")
	ErrInvalidAddress = errors.New("invalid email address")
	ErrInvalidMessage = errors.New("invalid message")
)

type Mailbox interface {
	Connect(ctx context.Context, address string) (Status, error)
	Disconnect(ctx context.Context) (Status, error)
	Status(ctx context.Context) Status
	Suggestions(ctx context.Context, query string) ([]string, error)
	Send(ctx context.Context, msg Message) error
}

// SuggestionSource lists known recipient addresses containing query.
type SuggestionSource interface {
	EmailSuggestions(ctx context.Context, query string) ([]string, error)
}

type Status struct {
	Provider   string     `json:"provider"`
	Connected  bool       `json:"isConnected"`
	Email      *string    `json:"email"`
	LastSynced *time.Time `json:"lastSynced"`
}

type Message struct {
	To       string            `json:"to"`
	ToName   string            `json:"toName,omitempty"`
	Subject  string            `json:"subject"`
	Body     string            `json:"body"`
	HTML     string            `json:"html,omitempty"`
	Template string            `json:"template,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

// prepare renders the template, if any, and checks the result is sendable.
func (m *Message) prepare() error {
	m.To = strings.TrimSpace(m.To)
	if _, err := netmail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, m.To)
	}
	if m.Template != "" {
		subject, body, err := Render(m.Template, m.Data)
		if err != nil {
			return err
		}
		if m.Subject == "" {
			m.Subject = subject
		}
		if m.Body == "" {
			m.Body = body
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Body) == "" && strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: body required", ErrInvalidMessage)
	}
	return nil
}

// session is the connection state shared by every Mailbox implementation.
type session struct {
	mu         sync.RWMutex
	provider   string
	address    string
	lastSynced time.Time
	now        func() time.Time
}

func (s *session) connect(address string) (Status, error) {
	addr, err := netmail.ParseAddress(strings.TrimSpace(address))
	if err != nil {
		return Status{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	s.mu.Lock()
	s.address = addr.Address
	s.lastSynced = s.now()
	s.mu.Unlock()
	return s.status(), nil
}

func (s *session) disconnect() Status {
	s.mu.Lock()
	s.address = ""
	s.lastSynced = time.Time{}
	s.mu.Unlock()
	return s.status()
}

func (s *session) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{Provider: s.provider}
	if s.address != "" {
		addr, synced := s.address, s.lastSynced
		st.Connected = true
		st.Email = &addr
		st.LastSynced = &synced
	}
	return st
}

// sender returns the connected address or ErrNotConnected.
func (s *session) sender() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.address == "" {
		return "", ErrNotConnected
	}
	s.lastSynced = s.now()
	return s.address, nil
}

// suggest merges source results with the static contacts, keeping addresses
// that contain query case-insensitively.
func suggest(ctx context.Context, src SuggestionSource, contacts []string, query string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]bool)
	out := []string{}
	add := func(addr string) {
		key := strings.ToLower(addr)
		if addr == "" || seen[key] || !strings.Contains(key, q) {
			return
		}
		seen[key] = true
		out = append(out, addr)
	}

	if src != nil {
		found, err := src.EmailSuggestions(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("email suggestions: %w", err)
		}
		for _, a := range found {
			add(a)
		}
	}
	for _, a := range contacts {
		add(a)
	}
	sort.Strings(out)
	return out, nil
}

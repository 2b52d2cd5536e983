/*
Package notify delivers reservation emails outside the request path.

PURPOSE:
  Implements the booking.Notifier contract: when a reservation is created
  the admin gets a heads-up and the requester gets a confirmation; when the
  admin decides (or the owner cancels) the requester is told the outcome.

DELIVERY MODEL:
  Events are queued on a buffered channel and drained by a fixed pool of
  workers. The enqueue never blocks the reservation transaction: if the
  queue is full the event is dropped with a warning. Send failures are
  logged as booking.ErrNotification warnings and never propagated.

COMPONENTS:
  Mailer:      SMTP-backed notifier (net/smtp, plain auth)
  LogNotifier: Dev/test sink that only logs events

SEE ALSO:
  - booking/service.go: Emits the events
  - config/: SMTP settings
*/
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/casona/booking-engine/booking"
)

// =============================================================================
// EVENTS
// =============================================================================

type EventKind string

const (
	EventCreated       EventKind = "reservation_created"
	EventStatusChanged EventKind = "status_changed"
)

// Event is one notification unit of work.
type Event struct {
	ID           string // uuid, for log correlation
	Kind         EventKind
	Reservation  booking.Reservation
	Requester    booking.User
	AdminMessage string
}

func newEvent(kind EventKind, r booking.Reservation, requester booking.User, adminMessage string) Event {
	return Event{
		ID:           uuid.NewString(),
		Kind:         kind,
		Reservation:  r,
		Requester:    requester,
		AdminMessage: adminMessage,
	}
}

// =============================================================================
// SMTP MAILER
// =============================================================================

// SMTPConfig holds delivery settings for the Mailer.
type SMTPConfig struct {
	Host       string
	Port       string
	From       string
	Password   string
	AdminEmail string
	AppURL     string // linked from admin notification emails
}

// Mailer sends reservation emails over SMTP through a worker pool.
type Mailer struct {
	cfg   SMTPConfig
	queue chan Event
	wg    sync.WaitGroup
	send  func(to []string, msg []byte) error
}

// NewMailer starts a mailer with the given number of workers and queue
// capacity. Call Shutdown to drain the queue before process exit.
func NewMailer(cfg SMTPConfig, workers, queueSize int) *Mailer {
	m := &Mailer{
		cfg:   cfg,
		queue: make(chan Event, queueSize),
	}
	m.send = m.sendSMTP

	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	return m
}

// ReservationCreated implements booking.Notifier.
func (m *Mailer) ReservationCreated(r booking.Reservation, requester booking.User) {
	m.enqueue(newEvent(EventCreated, r, requester, ""))
}

// StatusChanged implements booking.Notifier.
func (m *Mailer) StatusChanged(r booking.Reservation, requester booking.User, adminMessage string) {
	m.enqueue(newEvent(EventStatusChanged, r, requester, adminMessage))
}

func (m *Mailer) enqueue(ev Event) {
	select {
	case m.queue <- ev:
	default:
		log.Printf("warning: notification queue full, dropping event %s (%s)", ev.ID, ev.Kind)
	}
}

// Shutdown closes the queue and waits for in-flight deliveries.
func (m *Mailer) Shutdown() {
	close(m.queue)
	m.wg.Wait()
}

func (m *Mailer) worker(id int) {
	defer m.wg.Done()

	for ev := range m.queue {
		for _, msg := range m.render(ev) {
			if err := m.send([]string{msg.to}, msg.bytes(m.cfg.From)); err != nil {
				log.Printf("warning: %v: worker %d, event %s to %s: %v",
					booking.ErrNotification, id, ev.ID, msg.to, err)
				continue
			}
			log.Printf("notification sent: event %s (%s) to %s", ev.ID, ev.Kind, msg.to)
		}
	}
}

func (m *Mailer) sendSMTP(to []string, msg []byte) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, to, msg)
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

type message struct {
	to      string
	subject string
	body    string
}

func (msg message) bytes(from string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.body)
	return []byte(b.String())
}

// render maps an event to the emails it produces. Recipients without an
// address are skipped.
func (m *Mailer) render(ev Event) []message {
	var msgs []message
	r := ev.Reservation

	switch ev.Kind {
	case EventCreated:
		if m.cfg.AdminEmail != "" {
			msgs = append(msgs, message{
				to:      m.cfg.AdminEmail,
				subject: fmt.Sprintf("New reservation request from %s", ev.Requester.Username),
				body:    adminCreatedBody(r, ev.Requester.Username, m.cfg.AppURL),
			})
		}
		if ev.Requester.Email != "" {
			msgs = append(msgs, message{
				to:      ev.Requester.Email,
				subject: "Your reservation request was received",
				body:    userCreatedBody(r, ev.Requester.Username),
			})
		}
	case EventStatusChanged:
		if ev.Requester.Email != "" {
			msgs = append(msgs, message{
				to:      ev.Requester.Email,
				subject: fmt.Sprintf("Your reservation was %s", r.Status),
				body:    statusChangedBody(r, ev.Requester.Username, ev.AdminMessage),
			})
		}
	}
	return msgs
}

func stayDetails(r booking.Reservation) string {
	return fmt.Sprintf(`<ul>
  <li><strong>Check-in:</strong> %s</li>
  <li><strong>Check-out:</strong> %s</li>
  <li><strong>Nights:</strong> %d</li>
  <li><strong>Guests:</strong> %d</li>
  <li><strong>Notes:</strong> %s</li>
</ul>`, r.Start, r.End, r.Nights(), r.Guests, orNone(r.Notes))
}

func adminCreatedBody(r booking.Reservation, username, appURL string) string {
	return fmt.Sprintf(`<h1>New reservation request</h1>
<p>%s has requested a stay:</p>
%s
<p>Visit the <a href="%s/admin">admin dashboard</a> to approve or reject it.</p>`,
		username, stayDetails(r), appURL)
}

func userCreatedBody(r booking.Reservation, username string) string {
	return fmt.Sprintf(`<h1>Request received</h1>
<p>Hi %s,</p>
<p>We received your reservation request:</p>
%s
<p>It is pending approval. You will be notified once it is decided.</p>`,
		username, stayDetails(r))
}

func statusChangedBody(r booking.Reservation, username, adminMessage string) string {
	extra := ""
	if adminMessage != "" {
		extra = fmt.Sprintf("<p>Message from the admin: %s</p>", adminMessage)
	}
	return fmt.Sprintf(`<h1>Reservation %s</h1>
<p>Hi %s,</p>
<p>Your reservation has been %s:</p>
%s
%s`, r.Status, username, r.Status, stayDetails(r), extra)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// =============================================================================
// LOG NOTIFIER - Dev/test sink
// =============================================================================

// LogNotifier logs events instead of emailing. Used when SMTP is not
// configured.
type LogNotifier struct{}

func (LogNotifier) ReservationCreated(r booking.Reservation, requester booking.User) {
	log.Printf("reservation created: #%d %s to %s by %s", r.ID, r.Start, r.End, requester.Username)
}

func (LogNotifier) StatusChanged(r booking.Reservation, requester booking.User, adminMessage string) {
	if adminMessage != "" {
		log.Printf("reservation #%d %s (%s): %q", r.ID, r.Status, requester.Username, adminMessage)
		return
	}
	log.Printf("reservation #%d %s (%s)", r.ID, r.Status, requester.Username)
}

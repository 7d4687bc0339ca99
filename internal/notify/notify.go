// Package notify posts desktop notifications over D-Bus.
package notify

import log "github.com/sirupsen/logrus"

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// saveIcon is the freedesktop icon name shown on save notifications.
const saveIcon = "document-save"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// SaveReporter announces lyrics saves. Each report replaces the previous
// one so repeated saves do not pile up.
type SaveReporter struct {
	n      Notifier
	lastID uint32
}

// NewSaveReporter wraps n. A nil n reports nothing.
func NewSaveReporter(n Notifier) *SaveReporter {
	return &SaveReporter{n: n}
}

// Report posts the outcome of saving the lyrics of track.
func (r *SaveReporter) Report(track string, err error) {
	if r == nil || r.n == nil {
		return
	}

	notif := Notification{
		Title:      "Lyrics saved",
		Body:       track,
		Icon:       saveIcon,
		Timeout:    3000,
		ReplacesID: r.lastID,
		Urgency:    UrgencyLow,
	}
	if err != nil {
		notif.Title = "Saving lyrics failed"
		notif.Body = track + "\n" + err.Error()
		notif.Timeout = -1
		notif.Urgency = UrgencyCritical
	}

	id, nerr := r.n.Notify(notif)
	if nerr != nil {
		log.WithError(nerr).Debug("notify: sending save notification failed")
		return
	}
	r.lastID = id
}

// Close dismisses the last notification, if any.
func (r *SaveReporter) Close() error {
	if r == nil || r.n == nil || r.lastID == 0 {
		return nil
	}
	id := r.lastID
	r.lastID = 0
	return r.n.Close(id)
}

// silent drops every notification. New returns it when there is no
// notification server, so a SaveReporter built on it reports nothing.
type silent struct{}

func (silent) Notify(Notification) (uint32, error) { return 0, nil }

func (silent) Close(uint32) error { return nil }

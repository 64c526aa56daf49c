package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// NATSPublisher forwards change notifications to a NATS subject so that
// out-of-process consumers can react. Subjects are "<prefix>.<scope>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewNATSPublisher(conn *nats.Conn, prefix string, logger logrus.FieldLogger) *NATSPublisher {
	if prefix == "" {
		prefix = EventProjectsChanged
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &NATSPublisher{
		conn:   conn,
		prefix: strings.TrimSuffix(prefix, "."),
		logger: logger,
		now:    time.Now,
	}
}

// Subject returns the subject used for scope.
func (p *NATSPublisher) Subject(scope string) string {
	if scope == "" {
		return p.prefix + ".all"
	}
	return p.prefix + "." + subjectToken(scope)
}

func (p *NATSPublisher) NotifyChanged(_ context.Context, scope string) {
	data, err := json.Marshal(Event{Type: EventProjectsChanged, Scope: scope, At: p.now().UTC()})
	if err != nil {
		p.logger.WithError(err).Warn("encode change event")
		return
	}
	subject := p.Subject(scope)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("publish change event")
	}
}

// subjectToken keeps scope a single NATS subject token.
func subjectToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}

var _ Notifier = (*NATSPublisher)(nil)

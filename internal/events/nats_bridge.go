package events

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// Publisher is the subset of *nats.Conn the bridge needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATSBridge republishes bus notifications as JSON NATS messages so other
// processes can follow consent changes.
type NATSBridge struct {
	pub    Publisher
	prefix string
	onErr  func(subject string, err error)
}

func NewNATSBridge(pub Publisher, prefix string, onErr func(subject string, err error)) *NATSBridge {
	if onErr == nil {
		onErr = func(string, error) {}
	}
	return &NATSBridge{pub: pub, prefix: prefix, onErr: onErr}
}

// Subject maps a bus channel such as "kggeo:update" to "<prefix>.kggeo.update".
func (n *NATSBridge) Subject(channel string) string {
	subject := strings.ReplaceAll(channel, ":", ".")
	if n.prefix == "" {
		return subject
	}
	return n.prefix + "." + subject
}

// Attach forwards every notification on channel until the returned func
// is called.
func (n *NATSBridge) Attach(bus *Bus, channel string) func() {
	subject := n.Subject(channel)
	return bus.Subscribe(channel, func(_ string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			n.onErr(subject, err)
			return
		}
		if err := n.pub.Publish(subject, data); err != nil {
			n.onErr(subject, err)
		}
	})
}

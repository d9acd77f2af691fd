package providers

import (
	"github.com/nats-io/nats.go"
	"kgsite/internal/events"
	"kgsite/internal/geo"
	"kgsite/internal/structures"
	"time"
)

// NewEventsProvider builds the in-process bus and, when events.natsUrl is
// set, bridges consent updates to NATS. An unreachable NATS server is
// logged and the bus keeps working locally.
func NewEventsProvider(conf *structures.Config, logger Logger) (*events.Bus, func()) {
	bus := events.NewBus()
	unlog := bus.Subscribe(geo.EventUpdate, func(_ string, payload any) {
		p, _ := payload.(*geo.Payload)
		logger.Debugf(TypeGeo, "Consent record updated: %s", geo.StatusOf(p))
	})

	if conf.Events.NatsUrl == "" {
		return bus, unlog
	}

	nc, err := nats.Connect(conf.Events.NatsUrl, nats.Name(conf.AppName), nats.Timeout(2*time.Second))
	if err != nil {
		logger.Warnf(TypeApp, "NATS unavailable at %s, consent events stay local: %s", conf.Events.NatsUrl, err)
		return bus, unlog
	}

	bridge := events.NewNATSBridge(nc, conf.Events.SubjectPrefix, func(subject string, err error) {
		logger.Warnf(TypeGeo, "Publish %s failed: %s", subject, err)
	})
	detach := bridge.Attach(bus, geo.EventUpdate)
	logger.Infof(TypeApp, "Consent events bridged to NATS subject %s", bridge.Subject(geo.EventUpdate))

	return bus, func() {
		detach()
		unlog()
		if err := nc.Drain(); err != nil {
			logger.Warnf(TypeApp, "NATS drain: %s", err)
		}
	}
}

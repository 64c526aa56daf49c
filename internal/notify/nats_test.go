package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestNATSServer(t *testing.T) *natsserver.Server {
	t.Helper()
	opts := &natsserver.Options{
		Host:   "127.0.0.1",
		Port:   -1,
		NoLog:  true,
		NoSigs: true,
	}

	server, err := natsserver.NewServer(opts)
	require.NoError(t, err)

	go server.Start()

	if !server.ReadyForConnections(5 * time.Second) {
		t.Fatal("NATS server not ready")
	}

	t.Cleanup(func() {
		server.Shutdown()
		server.WaitForShutdown()
	})

	return server
}

func TestNATSPublisherPublishesPerScope(t *testing.T) {
	server := startTestNATSServer(t)
	nc, err := nats.Connect(server.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("projects.changed.*")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	pub := NewNATSPublisher(nc, "projects.changed", nil)
	pub.NotifyChanged(context.Background(), "user-1")
	require.NoError(t, nc.Flush())

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "projects.changed.user-1", msg.Subject)

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, EventProjectsChanged, ev.Type)
	assert.Equal(t, "user-1", ev.Scope)
}

func TestNATSPublisherSubject(t *testing.T) {
	pub := NewNATSPublisher(nil, "", nil)
	assert.Equal(t, "projects.changed.all", pub.Subject(""))
	assert.Equal(t, "projects.changed.a_b_c", pub.Subject("a.b*c"))
}

func TestNATSPublisherSwallowsErrors(t *testing.T) {
	server := startTestNATSServer(t)
	nc, err := nats.Connect(server.ClientURL())
	require.NoError(t, err)
	nc.Close()

	logger, hook := test.NewNullLogger()
	pub := NewNATSPublisher(nc, "projects.changed", logger)

	assert.NotPanics(t, func() {
		pub.NotifyChanged(context.Background(), "user-1")
	})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

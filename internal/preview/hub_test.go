package preview

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversEventToTCPListener(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer client.Close()
	hub.Add(server)

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			lines <- sc.Text()
		}
	}()

	hub.Broadcast(ComponentEvent(EventComponentUpdated, 7, 3))

	select {
	case line := <-lines:
		var got Event
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, EventComponentUpdated, got.Type)
		assert.Equal(t, int64(7), got.PortfolioID)
		assert.Equal(t, int64(3), got.ComponentID)
		assert.False(t, got.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBroadcastDropsDeadListener(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	hub.Add(server)
	_ = client.Close()
	_ = server.Close()

	hub.Broadcast(PortfolioEvent(EventPortfolioUpdated, 1))
	assert.Equal(t, 0, hub.Count())
}

func TestWelcomeReportsClientCount(t *testing.T) {
	hub := NewHub()
	other, _ := net.Pipe()
	defer other.Close()
	hub.Add(other)

	server, client := net.Pipe()
	defer client.Close()
	defer server.Close()

	go hub.Welcome(server)

	sc := bufio.NewScanner(client)
	require.True(t, sc.Scan())

	var got welcome
	require.NoError(t, json.Unmarshal(sc.Bytes(), &got))
	assert.Equal(t, "welcome", got.Type)
	assert.Equal(t, "tcp", got.Transport)
	assert.Equal(t, 1, got.Clients)
}

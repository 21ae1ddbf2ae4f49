package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"
)

func TestHub_BroadcastReachesConnectedClient(t *testing.T) {
	assert := assert.New(t)
	hub := NewHub()
	go hub.Run()
	server := httptest.NewServer(hub)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(err)
	defer conn.Close()

	for i := 0; i < 100 && hub.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(1, hub.ClientCount())

	sent := Frame{Step: 42, Bodies: []FrameBody{{X: 1, Y: 2, Mass: 3}}}
	assert.NoError(hub.Broadcast(sent))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	messageType, data, err := conn.ReadMessage()
	assert.NoError(err)
	assert.Equal(websocket.BinaryMessage, messageType)
	received := Frame{}
	assert.NoError(msgpack.Unmarshal(data, &received))
	assert.Equal(sent, received)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	assert := assert.New(t)
	hub := NewHub()
	assert.NoError(hub.Broadcast(Frame{Step: 1}))
	assert.Equal(0, hub.ClientCount())
}

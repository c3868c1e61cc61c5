package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// connect 起一个测试服务端，把升级后的连接注册进 hub，返回浏览器一侧的连接
func connect(t *testing.T, hub *Hub, userID int64, token string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := &Client{UserID: userID, Token: token, Conn: conn}
		hub.Register(client)

		go func() {
			defer func() {
				hub.Unregister(client)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_Empty(t *testing.T) {
	hub := NewHub(nil)

	assert.Equal(t, 0, hub.ConnectionCount())
	assert.False(t, hub.IsOnline(123))
	assert.Empty(t, hub.Users())

	// 离线用户不是错误
	assert.NoError(t, hub.SendToUser(123, &Message{Type: "test"}))
	assert.NoError(t, hub.Broadcast(&Message{Type: "test"}))
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub(nil)

	conn := connect(t, hub, 1, "token-1")
	other := connect(t, hub, 2, "token-2")
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	assert.True(t, hub.IsOnline(1))
	assert.True(t, hub.IsOnline(2))

	err := hub.SendToUser(1, &Message{Type: TypeNotifications, Data: map[string]int{"unread": 3}})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, TypeNotifications, msg.Type)
	assert.Equal(t, float64(3), msg.Data.(map[string]interface{})["unread"])

	// 其他用户收不到
	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(nil)

	tab1 := connect(t, hub, 7, "tok")
	tab2 := connect(t, hub, 7, "tok")
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.SendToUser(7, &Message{Type: TypeImportResult}))

	assert.Equal(t, TypeImportResult, readMessage(t, tab1).Type)
	assert.Equal(t, TypeImportResult, readMessage(t, tab2).Type)

	users := hub.Users()
	assert.Len(t, users, 1)
	assert.Equal(t, "tok", users[7])
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(nil)

	a := connect(t, hub, 1, "a")
	b := connect(t, hub, 2, "b")
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast(&Message{Type: TypeRefresh, Data: map[string]string{"resource": "categories"}}))

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, TypeRefresh, msg.Type)
		assert.Equal(t, "categories", msg.Data.(map[string]interface{})["resource"])
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil)

	conn := connect(t, hub, 5, "tok")
	require.Eventually(t, func() bool { return hub.IsOnline(5) }, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return !hub.IsOnline(5) }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.Empty(t, hub.Users())
}

func TestHub_UsersSkipsEmptyToken(t *testing.T) {
	hub := NewHub(nil)

	hub.Register(&Client{UserID: 9})
	hub.Register(&Client{UserID: 10, Token: "t"})

	users := hub.Users()
	_, has9 := users[9]
	assert.False(t, has9)
	assert.Equal(t, "t", users[10])
}

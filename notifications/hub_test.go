package notifications_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/Pinoccchio/LawbotWeb-sub002/allocation"
	"github.com/Pinoccchio/LawbotWeb-sub002/notifications"
)

func TestHub_BroadcastNoClients(t *testing.T) {
	hub := notifications.NewHub()

	// must not panic with nobody connected
	hub.Broadcast("assignment_changed", map[string]string{"caseID": "case-1"})
}

func TestHub_BroadcastToConnectedClient(t *testing.T) {
	hub := notifications.NewHub()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleAssignmentsWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err)
	defer conn.Close()

	// give the server a beat to register the client
	time.Sleep(50 * time.Millisecond)

	event := allocation.AssignmentChangedEvent{
		EventID:      "event-1",
		CaseID:       "case-1",
		NewOfficerID: "officer-7",
	}
	hub.Broadcast("assignment_changed", event)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var received struct {
		Event string                            `json:"event"`
		Data  allocation.AssignmentChangedEvent `json:"data"`
	}
	assert.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, "assignment_changed", received.Event)
	assert.Equal(t, "case-1", received.Data.CaseID)
	assert.Equal(t, "officer-7", received.Data.NewOfficerID)
}

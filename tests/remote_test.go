package tests

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/mengchil/visage"
	"github.com/mengchil/visage/internal/logging"
	"github.com/mengchil/visage/internal/remote"
	"github.com/mengchil/visage/pkg/adapters/memory"
	"github.com/mengchil/visage/pkg/domain"
)

// An authority pushing emotions over websocket ends up moving the face,
// and the applied expression survives a restart via the state store.
func TestRemoteFeedDrivesFaceAndPersists(t *testing.T) {
	store := memory.NewStore()

	engine, err := visage.New(visage.WithStateStore(store))
	require.NoError(t, err)

	feed := []string{
		`{"emotion":{"preset_id":"happy"}}`,
		`{"emotion":{"preset_id":"happy"}}`,
		`{"agent_state":"RECOVERING"}`,
	}
	ts := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		for _, m := range feed {
			if _, err := ws.Write([]byte(m)); err != nil {
				return
			}
		}
		var buf [1]byte
		ws.Read(buf[:])
	}))
	defer ts.Close()

	feedSync := remote.New(remote.Config{
		URL:            "ws" + strings.TrimPrefix(ts.URL, "http"),
		ReconnectDelay: 20 * time.Millisecond,
	}, engine, logging.NewNop(), domain.LifecycleHooks{})
	feedSync.Start()

	require.Eventually(t, func() bool {
		return engine.CurrentExpression() == "sad"
	}, 2*time.Second, 10*time.Millisecond, "RECOVERING maps to sad after happy")

	require.NoError(t, feedSync.Close())
	require.NoError(t, engine.Close())

	// restart: the remote-applied expression is restored
	restarted, err := visage.New(visage.WithStateStore(store))
	require.NoError(t, err)
	defer restarted.Close()
	assert.Equal(t, "sad", restarted.CurrentExpression())
}

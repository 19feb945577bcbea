package hub

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
)

// recordingBackend captures the path and body of the last request and
// answers with a canned envelope.
type recordingBackend struct {
	server *httptest.Server
	path   string
	query  string
	body   []byte
}

func newRecordingBackend(t *testing.T, response string) *recordingBackend {
	t.Helper()
	b := &recordingBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.path = r.URL.Path
		b.query = r.URL.RawQuery
		b.body, _ = io.ReadAll(r.Body)
		w.Write([]byte(response))
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *recordingBackend) client() *Client {
	return NewClient(b.server.URL, StaticToken("tok"))
}

func TestClassOpsListRouting(t *testing.T) {
	t.Run("plain listing", func(t *testing.T) {
		b := newRecordingBackend(t, `{"content":{"classes":[],"pagination":{}}}`)
		_, _, err := classOps{b.client()}.List(context.Background(), Filters{"page": "2"})
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/classes", b.path)
		assert.Equal(t, "page=2", b.query)
	})

	t.Run("gate filter selects the scoped path", func(t *testing.T) {
		b := newRecordingBackend(t, `{"content":{"classes":[],"pagination":{}}}`)
		_, _, err := classOps{b.client()}.List(context.Background(), Filters{"gate_id": "g1", "page": "2"})
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/classes/gate/g1", b.path)
		assert.Equal(t, "page=2", b.query, "the routing filter must not leak into the query")
	})
}

func TestBoardOpsListRouting(t *testing.T) {
	cases := []struct {
		name    string
		filters Filters
		path    string
	}{
		{"plain", Filters{}, "/api/v1/boards"},
		{"by gate", Filters{"gate_id": "g1"}, "/api/v1/boards/gates/g1/boards"},
		{"by class", Filters{"class_id": "c1"}, "/api/v1/boards/classes/c1/boards"},
		{"children of board", Filters{"board_id": "b1"}, "/api/v1/boards/boards/b1/boards"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newRecordingBackend(t, `{"content":{"boards":[],"pagination":{}}}`)
			_, _, err := boardOps{b.client()}.List(context.Background(), tc.filters)
			require.NoError(t, err)
			assert.Equal(t, tc.path, b.path)
		})
	}
}

func TestBoardOpsCreateNesting(t *testing.T) {
	t.Run("top-level create", func(t *testing.T) {
		b := newRecordingBackend(t, `{"content":{"board_id":"b1"}}`)
		_, err := boardOps{b.client()}.Create(context.Background(), api.CreateBoardRequest{Name: "canvas"})
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/boards", b.path)
	})

	t.Run("child create goes to the nested endpoint", func(t *testing.T) {
		b := newRecordingBackend(t, `{"content":{"board_id":"b2"}}`)
		_, err := boardOps{b.client()}.Create(context.Background(), api.CreateBoardRequest{Name: "child", ParentBoardId: "b1"})
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/boards/boards/b1/boards", b.path)
	})
}

func TestSettingsMerging(t *testing.T) {
	t.Run("gate defaults fill unset fields, caller wins", func(t *testing.T) {
		merged := mergeGateSettings(&domain.GateSettings{MaxMembers: 5})
		assert.Equal(t, 5, merged.MaxMembers)
		assert.Equal(t, DefaultGateSettings.ClassCreationCost, merged.ClassCreationCost)
		assert.Equal(t, DefaultGateSettings.BoardCreationCost, merged.BoardCreationCost)

		assert.Equal(t, DefaultGateSettings, mergeGateSettings(nil))
	})

	t.Run("class and board merges behave the same way", func(t *testing.T) {
		c := mergeClassSettings(&domain.ClassSettings{MaxBoards: 7, AIModerationEnabled: true})
		assert.Equal(t, 7, c.MaxBoards)
		assert.Equal(t, DefaultClassSettings.MaxMembers, c.MaxMembers)
		assert.True(t, c.AIModerationEnabled)

		bd := mergeBoardSettings(&domain.BoardSettings{TweetCost: 3})
		assert.Equal(t, 3, bd.TweetCost)
		assert.Equal(t, DefaultBoardSettings.MaxTweets, bd.MaxTweets)
	})

	t.Run("create sends merged settings on the wire", func(t *testing.T) {
		b := newRecordingBackend(t, `{"content":{"gate_id":"g1"}}`)
		_, err := gateOps{b.client()}.Create(context.Background(), api.CreateGateRequest{Name: "alpha"})
		require.NoError(t, err)

		var sent api.CreateGateRequest
		require.NoError(t, json.Unmarshal(b.body, &sent))
		require.NotNil(t, sent.Settings)
		assert.Equal(t, DefaultGateSettings, *sent.Settings)
	})
}

func TestUpdatePayloadCarriesNoIdentity(t *testing.T) {
	// The update body must never resend the server-assigned id; the id only
	// travels in the path.
	b := newRecordingBackend(t, `{"content":{"gate_id":"g1"}}`)
	_, err := gateOps{b.client()}.Update(context.Background(), "g1", api.CreateGateRequest{Name: "renamed"})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/gates/g1", b.path)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(b.body, &sent))
	assert.NotContains(t, sent, "gate_id")
	assert.NotContains(t, sent, "id")
}

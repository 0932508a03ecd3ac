package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/b-it-bots/datahub/internal/catalog"
	"github.com/b-it-bots/datahub/internal/config"
)

const testAPIInfo = `
request_types:
  set_robot_location:
    url: robot-location
    type: PUT
    id_required: true
    schema_name: RobotLocation
  add_status:
    url: robot-status
    type: POST
    id_required: true
    schema_name: RobotStatus
  list_inventory_items:
    url: inventory-item
    type: GET
    id_required: false
    schema_name: InventoryItem
  get_shop_info:
    url: inventory-item
    type: GET
    id_required: true
    schema_name: InventoryItem
  set_shop:
    url: inventory-item
    type: PUT
    id_required: true
    schema_name: InventoryItem
  list_inventory_orders:
    url: inventory-order
    type: GET
    id_required: false
    schema_name: Order
schemas:
  RobotLocation: ["@id", "@type", episode, team, timestamp, x, y, z]
  RobotStatus: ["@id", "@type", message, episode, team, timestamp, x, y, z]
  InventoryItem: ["@id", "@type", label, description, shelf, slot, quantity, timestamp]
  Order: ["@id", items]
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testAPIInfo))
	require.NoError(t, err)
	return cat
}

func testProfile(baseURL string) *config.Profile {
	return &config.Profile{
		TeamName:    "team1",
		BaseURL:     baseURL,
		EpisodeName: "EPISODE7",
		RobotName:   "robby",
	}
}

// recordingServer captures every request the dispatcher performs.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
	Auth   string
}

func recordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var calls []recordedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		rec.Auth = r.Header.Get("Authorization")
		calls = append(calls, rec)
		w.WriteHeader(status)
		w.Write([]byte(respBody))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func completeItemArgs() map[string]any {
	return map[string]any{
		"@id": "ITEM00", "@type": "InventoryItem", "label": "Bolt",
		"description": "", "shelf": "SH01", "slot": "SL01",
		"quantity": 10, "timestamp": "2019-09-17T09:00:00.000000Z",
	}
}

func TestDispatch_URLConstruction(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	cases := []struct {
		request  string
		args     map[string]any
		id       string
		wantPath string
	}{
		{"list_inventory_items", nil, "", "/team1/inventory-item"},
		{"list_inventory_orders", nil, "", "/team1/inventory-order"},
		{"get_shop_info", nil, "ITEM00", "/team1/inventory-item/ITEM00"},
		{"set_shop", completeItemArgs(), "ITEM00", "/team1/inventory-item/ITEM00"},
	}
	for _, tc := range cases {
		_, err := d.Dispatch(context.Background(), tc.request, "team1", tc.args, tc.id)
		require.NoError(t, err, tc.request)
	}

	require.Len(t, *calls, len(cases))
	for i, tc := range cases {
		assert.Equal(t, tc.wantPath, (*calls)[i].Path, tc.request)
	}
}

func TestDispatch_UnknownRequestType(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	_, err := d.Dispatch(context.Background(), "no_such_request", "team1", nil, "")
	assert.ErrorIs(t, err, ErrUnknownRequestType)
	assert.Empty(t, *calls, "no network call may be made for an unknown request type")
}

func TestDispatch_MissingResourceID(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	_, err := d.Dispatch(context.Background(), "get_shop_info", "team1", nil, "")
	assert.ErrorIs(t, err, ErrMissingResourceID)
	assert.Empty(t, *calls)
}

func TestDispatch_SchemaViolation(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	args := completeItemArgs()
	delete(args, "quantity")

	_, err := d.Dispatch(context.Background(), "set_shop", "team1", args, "ITEM00")
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "quantity", violation.Field)
	assert.Empty(t, *calls, "no network call may be made on a schema violation")
}

func TestDispatch_ExtraArgumentsPassThrough(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusNoContent, "")
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	args := completeItemArgs()
	args["_metadata"] = "kept"

	_, err := d.Dispatch(context.Background(), "set_shop", "team1", args, "ITEM00")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "kept", (*calls)[0].Body["_metadata"])
}

func TestDispatch_ReadMethodsSendNoBody(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `[]`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	// Arguments to a GET are ignored, even incomplete ones.
	_, err := d.Dispatch(context.Background(), "list_inventory_items", "team1",
		map[string]any{"unrelated": true}, "")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Nil(t, (*calls)[0].Body)
}

func TestDispatch_SuccessDecodesBody(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `[{"@id":"ITEM00"}]`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	raw, err := d.Dispatch(context.Background(), "list_inventory_items", "team1", nil, "")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "ITEM00", items[0]["@id"])
}

func TestDispatch_InformationalStatus(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNoContent, 210} {
		ts, _ := recordingServer(t, status, "")
		d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

		raw, err := d.Dispatch(context.Background(), "set_shop", "team1", completeItemArgs(), "ITEM00")
		assert.NoError(t, err, "status %d", status)
		assert.Nil(t, raw, "status %d carries no success payload", status)
	}
}

func TestDispatch_RemoteError(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusBadRequest, `{"message":"item not found"}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	_, err := d.Dispatch(context.Background(), "get_shop_info", "team1", nil, "MISSING")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Contains(t, remote.Body, "item not found")
}

func TestDispatch_TransportError(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())
	ts.Close()

	_, err := d.Dispatch(context.Background(), "list_inventory_items", "team1", nil, "")
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestDispatch_MalformedSuccessBody(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, "not json at all")
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	_, err := d.Dispatch(context.Background(), "list_inventory_items", "team1", nil, "")
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestDispatch_BasicAuth(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `[]`)

	profile := testProfile(ts.URL + "/")
	profile.AuthRequired = true
	profile.AuthInfo = &config.AuthInfo{User: "robot", Pass: "secret"}
	d := NewDispatcher(testCatalog(t), profile, zap.NewNop())

	_, err := d.Dispatch(context.Background(), "list_inventory_items", "team1", nil, "")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("robot", "secret")
	require.Len(t, *calls, 1)
	assert.Equal(t, req.Header.Get("Authorization"), (*calls)[0].Auth)
}

func TestDispatch_NoAuthHeaderByDefault(t *testing.T) {
	ts, calls := recordingServer(t, http.StatusOK, `[]`)
	d := NewDispatcher(testCatalog(t), testProfile(ts.URL+"/"), zap.NewNop())

	_, err := d.Dispatch(context.Background(), "list_inventory_items", "team1", nil, "")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Empty(t, (*calls)[0].Auth)
}

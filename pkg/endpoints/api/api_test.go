//nolint:funlen // ok for tests
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/memory"
	"github.com/mpapenbr/triathlon-pacer/testsupport/basedata"
)

func newTestServer(t *testing.T, storeOpts ...memory.Option) *httptest.Server {
	t.Helper()
	store, err := memory.New(nil, storeOpts)
	require.NoError(t, err)
	svc := paceset.NewService(store,
		paceset.WithClock(basedata.SteppingClock()),
		paceset.WithIDGenerator(basedata.SequentialIDs()))
	srv := httptest.NewServer(NewServer(svc).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var ret T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ret))
	return ret
}

func TestCalculate(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/calculate", basedata.SampleForm())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	got := decode[pace.Calculation](t, resp)
	assert.Equal(t, 8610, got.Total.Seconds)
	assert.Equal(t, "02:23:30", got.Total.Display)
	assert.Equal(t, "09:23", got.FinishTime)
	assert.Equal(t, basedata.SolvedSampleForm(), got.Form)
}

func TestCalculateInvalidBody(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/calculate",
		bytes.NewBufferString("{"))
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "my-id")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "my-id", resp.Header.Get(requestIDHeader))
}

func TestPaceSetLifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/v1/pacesets"

	resp := do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]model.PaceSet](t, resp))

	resp = do(t, http.MethodPost, base,
		SaveRequest{Name: "Olympic", Form: basedata.SampleForm()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[model.PaceSet](t, resp)
	assert.Equal(t, "id-1", saved.ID)
	assert.Equal(t, "02:23:30", saved.TotalTime)

	resp = do(t, http.MethodPost, base,
		SaveRequest{Name: "olympic", Form: basedata.SampleForm()})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	conflict := decode[ErrorResponse](t, resp)
	require.NotNil(t, conflict.Alert)
	assert.Equal(t, paceset.ActionOverwrite, conflict.Alert.Choices[1].Action)
	require.NotNil(t, conflict.Existing)
	assert.Equal(t, "id-1", conflict.Existing.ID)

	form := basedata.SampleForm()
	form.Run.Time = "20:00"
	resp = do(t, http.MethodPost, base,
		SaveRequest{Name: "olympic", Form: form, Overwrite: true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	replaced := decode[model.PaceSet](t, resp)
	assert.Equal(t, "id-1", replaced.ID)
	assert.Equal(t, "01:53:30", replaced.TotalTime)

	resp = do(t, http.MethodGet, base+"/id-1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "olympic", decode[model.PaceSet](t, resp).Name)

	resp = do(t, http.MethodDelete, base+"/id-1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/id-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, base+"/id-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveValidation(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		req  SaveRequest
		want string
	}{
		{name: "empty name", req: SaveRequest{Name: " ", Form: basedata.SampleForm()}, want: "Name missing"},
		{name: "nothing to save", req: SaveRequest{Name: "Empty"}, want: "Nothing to save"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/api/v1/pacesets", tt.req)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			got := decode[ErrorResponse](t, resp)
			require.NotNil(t, got.Alert)
			assert.Equal(t, tt.want, got.Alert.Title)
		})
	}
}

func TestSaveReportsSolverErrors(t *testing.T) {
	srv := newTestServer(t)
	form := basedata.SampleForm()
	form.Swim.Time = "25:00"
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/pacesets",
		SaveRequest{Name: "Partial", Form: form})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	got := decode[SaveResponse](t, resp)
	assert.Equal(t, "Partial", got.Name)
	// swim is left out of the total
	assert.Equal(t, 120+3900+90+3000, got.TotalSeconds)
	assert.Equal(t, []string{"Swim: enter only two of distance, time and pace"}, got.Errors)
	require.NotNil(t, got.SolverAlert)
	assert.Equal(t, "Check your input", got.SolverAlert.Title)
	assert.Equal(t, got.Errors[0], got.SolverAlert.Message)

	resp = do(t, http.MethodPost, srv.URL+"/api/v1/pacesets",
		SaveRequest{Name: "Clean", Form: basedata.SampleForm()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	clean := decode[SaveResponse](t, resp)
	assert.Empty(t, clean.Errors)
	assert.Nil(t, clean.SolverAlert)
}

func TestSaveNothingReportsSolverErrors(t *testing.T) {
	srv := newTestServer(t)
	form := model.RaceForm{Run: model.DisciplineText{Distance: "10000"}}
	resp := do(t, http.MethodPost, srv.URL+"/api/v1/pacesets",
		SaveRequest{Name: "Broken", Form: form})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	got := decode[ErrorResponse](t, resp)
	assert.Equal(t, []string{"Run: enter two of distance, time and pace"}, got.Errors)
}

func TestStorageFailure(t *testing.T) {
	srv := newTestServer(t, memory.WithFailure(errors.New("disk full")))
	resp := do(t, http.MethodGet, srv.URL+"/api/v1/pacesets", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	got := decode[ErrorResponse](t, resp)
	require.NotNil(t, got.Alert)
	assert.Equal(t, "Could not load the pace sets.", got.Alert.Message)
}

package resource_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eightyseven/internal/resource"
	"eightyseven/internal/transport"
)

// scripted answers every request with the next canned response and records
// what it was sent.
type scripted struct {
	status   int
	location string
	body     string

	method, path string
	sent         map[string]any
}

func newScripted(t *testing.T) (*scripted, *transport.Client) {
	t.Helper()
	s := &scripted{status: http.StatusOK}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.method, s.path = r.Method, r.URL.Path
		s.sent = nil
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &s.sent)
		}
		if s.location != "" {
			w.Header().Set("Location", s.location)
		}
		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, s.body)
	}))
	t.Cleanup(srv.Close)

	c, err := transport.New(srv.URL + "/api/v1")
	require.NoError(t, err)
	return s, c
}

func TestURL(t *testing.T) {
	r := resource.New(nil, "PasswordRecord")
	assert.Equal(t, "passwordrecord", r.Kind())
	assert.Equal(t, "/passwordrecord/", r.URL())
	assert.False(t, r.Persisted())

	store := resource.NewPasswordStore(nil)
	assert.Equal(t, "/passwordstore/", store.URL())
}

func TestSave_CreateAssignsIDFromLocation(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusCreated
	srv.location = "/passwordrecord/42/"

	rec := resource.NewPasswordRecord(c)
	rec.SetTitle("mail")
	rec.SetUsername("al")
	require.Empty(t, rec.ID())

	require.NoError(t, rec.Save(context.Background()))
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/api/v1/passwordrecord/", srv.path)
	assert.Equal(t, map[string]any{"title": "mail", "username": "al"}, srv.sent)

	assert.Equal(t, "42", rec.ID())
	assert.Equal(t, "/passwordrecord/42/", rec.URL())
}

func TestSave_AbsoluteLocation(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusCreated
	srv.location = "https://87.example.org/api/v1/passwordstore/7/"

	s := resource.NewPasswordStore(c)
	s.SetName("work")
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, "7", s.ID())
}

func TestSave_MissingLocation(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusCreated

	s := resource.NewPasswordStore(c)
	err := s.Save(context.Background())
	assert.ErrorIs(t, err, resource.ErrMalformedPayload)
	assert.False(t, s.Persisted())
}

func TestSave_UpdatePatchesSelectedFields(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusAccepted

	s, err := resource.NewPasswordStoreFrom(c, `{"id": 3, "name": "work", "description": "job", "resource_uri": "/api/v1/passwordstore/3/"}`)
	require.NoError(t, err)
	s.SetName("home")

	require.NoError(t, s.Save(context.Background(), "name"))
	assert.Equal(t, http.MethodPatch, srv.method)
	assert.Equal(t, "/api/v1/passwordstore/3/", srv.path)
	assert.Equal(t, map[string]any{"name": "home"}, srv.sent)
	assert.Equal(t, "3", s.ID())

	err = s.Save(context.Background(), "colour")
	assert.ErrorIs(t, err, resource.ErrFieldNotFound)
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusServiceUnavailable, resource.ErrRemoteServer},
		{http.StatusInternalServerError, resource.ErrRemoteServer},
		{http.StatusNotFound, resource.ErrRemoteNotFound},
		{http.StatusForbidden, resource.ErrRemoteNotFound},
	}
	for _, tc := range cases {
		srv, c := newScripted(t)
		srv.status = tc.status
		srv.location = "/passwordrecord/1/"

		rec := resource.NewPasswordRecord(c)
		err := rec.Save(context.Background())
		require.ErrorIs(t, err, tc.want, tc.status)
		assert.False(t, rec.Persisted(), "failed save must not assign an id")

		var se *resource.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, tc.status, se.StatusCode)
	}

	// 304 is never followed by net/http, so it reaches the caller as is.
	srv, c := newScripted(t)
	srv.status = http.StatusNotModified
	srv.location = "/passwordrecord/1/"
	rec := resource.NewPasswordRecord(c)
	err := rec.Save(context.Background())
	var se *resource.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotModified, se.StatusCode)
	assert.NotErrorIs(t, err, resource.ErrRemoteServer)
	assert.NotErrorIs(t, err, resource.ErrRemoteNotFound)
	assert.Contains(t, err.Error(), "unexpected status")
	assert.False(t, rec.Persisted())

	for _, ok := range []int{http.StatusOK, http.StatusCreated} {
		srv, c := newScripted(t)
		srv.status = ok
		srv.location = "/passwordrecord/5/"
		rec := resource.NewPasswordRecord(c)
		require.NoError(t, rec.Save(context.Background()), ok)
		assert.Equal(t, "5", rec.ID())
	}
}

func TestSave_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := transport.New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	rec := resource.NewPasswordRecord(c)
	err = rec.Save(context.Background())
	assert.ErrorIs(t, err, resource.ErrTransport)

	var se *resource.StatusError
	assert.False(t, errors.As(err, &se))
}

func TestDelete_ResetsState(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusNoContent

	rec, err := resource.NewPasswordRecordFrom(c, map[string]any{"id": "9", "title": "mail"})
	require.NoError(t, err)

	require.NoError(t, rec.Delete(context.Background()))
	assert.Equal(t, http.MethodDelete, srv.method)
	assert.Equal(t, "/api/v1/passwordrecord/9/", srv.path)
	assert.Empty(t, rec.ID())
	assert.Equal(t, "/passwordrecord/", rec.URL())

	_, err = rec.Title()
	assert.ErrorIs(t, err, resource.ErrFieldNotFound)
}

func TestDelete_FailureLeavesInstance(t *testing.T) {
	srv, c := newScripted(t)
	srv.status = http.StatusBadGateway

	rec, err := resource.NewPasswordRecordFrom(c, map[string]any{"id": "9", "title": "mail"})
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Delete(context.Background()), resource.ErrRemoteServer)
	assert.Equal(t, "9", rec.ID())
	title, err := rec.Title()
	require.NoError(t, err)
	assert.Equal(t, "mail", title)
}

func TestDelete_NotPopulated(t *testing.T) {
	rec := resource.NewPasswordRecord(nil)
	assert.ErrorIs(t, rec.Delete(context.Background()), resource.ErrNotPopulated)
}

func TestField_DistinguishesUnpopulated(t *testing.T) {
	blank := resource.NewPasswordRecord(nil)
	_, err := blank.Field("title")
	var fe *resource.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, fe.ID)
	assert.Contains(t, err.Error(), "not been populated")

	known, err := resource.NewPasswordRecordFrom(nil, `{"id": 12}`)
	require.NoError(t, err)
	_, err = known.Field("title")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "12", fe.ID)
	assert.Contains(t, err.Error(), "object id 12")
	assert.ErrorIs(t, err, resource.ErrFieldNotFound)
}

func TestDecode(t *testing.T) {
	r, err := resource.Decode(nil, resource.KindPasswordRecord,
		[]byte(`{"id": 12345678901234, "resource_uri": "/x/", "title": "mail", "store": 3}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234", r.ID())
	assert.NotContains(t, r.Fields(), "id")
	assert.NotContains(t, r.Fields(), "resource_uri")

	store, err := r.StringField("store")
	require.NoError(t, err)
	assert.Equal(t, "3", store)

	raw := json.RawMessage(`{"id": "abc"}`)
	r, err = resource.Decode(nil, resource.KindPasswordStore, raw)
	require.NoError(t, err)
	assert.Equal(t, "/passwordstore/abc/", r.URL())

	for _, bad := range []any{`{"title": "no id"}`, `not json`, `[1]`, `null`, 42, `{"id": ""}`} {
		_, err := resource.Decode(nil, resource.KindPasswordStore, bad)
		assert.ErrorIs(t, err, resource.ErrMalformedPayload, "%v", bad)
	}
}

func TestDecode_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"id": "1", "resource_uri": "/passwordstore/1/", "name": "x"}
	_, err := resource.Decode(nil, resource.KindPasswordStore, in)
	require.NoError(t, err)
	assert.Len(t, in, 3)
}

package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Transport is the part of the HTTP client the resource model uses. Paths
// are relative to the API root; the transport supplies the base URL.
type Transport interface {
	Get(ctx context.Context, path string) (*http.Response, error)
	Post(ctx context.Context, path string, body []byte) (*http.Response, error)
	Patch(ctx context.Context, path string, body []byte) (*http.Response, error)
	Delete(ctx context.Context, path string) (*http.Response, error)
}

// Fields the server adds to every object that are not part of its data.
const (
	idField          = "id"
	resourceURIField = "resource_uri"
)

// Resource is a client-side copy of a server object.
//
// A Resource is not safe for concurrent use.
type Resource struct {
	kind   string
	id     string
	fields map[string]any
	t      Transport
}

// New returns an unsaved resource of kind bound to t.
func New(t Transport, kind string) *Resource {
	return &Resource{
		kind:   strings.ToLower(kind),
		fields: make(map[string]any),
		t:      t,
	}
}

// Kind returns the lower-cased type name used in URLs.
func (r *Resource) Kind() string { return r.kind }

// ID returns the server-assigned id, or "" when unsaved.
func (r *Resource) ID() string { return r.id }

// Persisted reports whether the server has assigned an id.
func (r *Resource) Persisted() bool { return r.id != "" }

// URL returns /{kind}/ for an unsaved resource and /{kind}/{id}/ otherwise.
func (r *Resource) URL() string {
	if r.id == "" {
		return "/" + r.kind + "/"
	}
	return "/" + r.kind + "/" + r.id + "/"
}

// Field returns the value of name.
func (r *Resource) Field(name string) (any, error) {
	v, ok := r.fields[name]
	if !ok {
		return nil, &FieldError{Field: name, ID: r.id}
	}
	return v, nil
}

// StringField returns name rendered as a string. Numbers are formatted
// without exponent; other non-string values are an error.
func (r *Resource) StringField(name string) (string, error) {
	v, err := r.Field(name)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%s: %s holds %T, not a string", r.kind, name, v)
}

// SetField sets name locally; nothing is sent until Save.
func (r *Resource) SetField(name string, v any) { r.fields[name] = v }

// Fields returns a copy of every field.
func (r *Resource) Fields() map[string]any { return maps.Clone(r.fields) }

// Save sends the resource to the server: POST when unsaved, PATCH otherwise.
// With no names every field is sent, else only the named ones.
//
// On a successful create the id is read from the Location header.
func (r *Resource) Save(ctx context.Context, updateFields ...string) error {
	body, err := r.payload(updateFields)
	if err != nil {
		return err
	}

	method, send := http.MethodPatch, r.t.Patch
	if r.id == "" {
		method, send = http.MethodPost, r.t.Post
	}
	path := r.URL()
	resp, err := send(ctx, path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrTransport, err)
	}
	defer drain(resp)
	if err := checkStatus(method, path, resp); err != nil {
		return err
	}

	if r.id == "" {
		id, err := idFromLocation(resp.Header.Get("Location"), path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		r.id = id
	}
	return nil
}

// Delete removes the resource from the server and, on success, resets the
// instance to the unsaved state.
func (r *Resource) Delete(ctx context.Context) error {
	if r.id == "" {
		return fmt.Errorf("delete %s: %w", r.kind, ErrNotPopulated)
	}
	path := r.URL()
	resp, err := r.t.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", http.MethodDelete, path, ErrTransport, err)
	}
	defer drain(resp)
	if err := checkStatus(http.MethodDelete, path, resp); err != nil {
		return err
	}

	r.id = ""
	r.fields = make(map[string]any)
	return nil
}

func (r *Resource) payload(updateFields []string) ([]byte, error) {
	data := r.fields
	if len(updateFields) > 0 {
		data = make(map[string]any, len(updateFields))
		for _, name := range updateFields {
			v, err := r.Field(name)
			if err != nil {
				return nil, err
			}
			data[name] = v
		}
	}
	return json.Marshal(data)
}

// Decode builds a persisted resource of kind from server data: either a
// decoded map or raw JSON ([]byte, string, json.RawMessage). The id and
// resource_uri entries are consumed; everything else becomes a field.
func Decode(t Transport, kind string, data any) (*Resource, error) {
	var m map[string]any
	switch d := data.(type) {
	case map[string]any:
		m = maps.Clone(d)
	case []byte:
		if err := unmarshal(d, &m); err != nil {
			return nil, err
		}
	case json.RawMessage:
		if err := unmarshal(d, &m); err != nil {
			return nil, err
		}
	case string:
		if err := unmarshal([]byte(d), &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported data type %T", ErrMalformedPayload, data)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedPayload)
	}

	raw, ok := m[idField]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedPayload, idField)
	}
	id, err := formatID(raw)
	if err != nil {
		return nil, err
	}
	delete(m, idField)
	delete(m, resourceURIField)

	r := New(t, kind)
	r.id = id
	r.fields = m
	return r, nil
}

// Fetch loads the resource of kind with id.
func Fetch(ctx context.Context, t Transport, kind, id string) (*Resource, error) {
	if id == "" {
		return nil, fmt.Errorf("fetch %s: %w", kind, ErrNotPopulated)
	}
	r := New(t, kind)
	r.id = id
	body, err := get(ctx, t, r.URL())
	if err != nil {
		return nil, err
	}
	return Decode(t, kind, body)
}

// List loads every resource of kind. The response may be a bare JSON array
// or a listing envelope holding the items under "objects".
func List(ctx context.Context, t Transport, kind string) ([]*Resource, error) {
	body, err := get(ctx, t, New(t, kind).URL())
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Objects []json.RawMessage `json:"objects"`
		}
		if err := unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		items = envelope.Objects
	}

	out := make([]*Resource, 0, len(items))
	for _, item := range items {
		r, err := Decode(t, kind, item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func get(ctx context.Context, t Transport, path string) ([]byte, error) {
	resp, err := t.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", http.MethodGet, path, ErrTransport, err)
	}
	defer drain(resp)
	if err := checkStatus(http.MethodGet, path, resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", http.MethodGet, path, ErrTransport, err)
	}
	return body, nil
}

// checkStatus accepts 2xx only. net/http follows redirects itself, so a 3xx
// that gets here could not be followed.
func checkStatus(method, path string, resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: path, StatusCode: resp.StatusCode}
	}
	return nil
}

// idFromLocation extracts the id that follows own (the collection URL, such
// as /passwordrecord/) in a Location header, which may be absolute.
func idFromLocation(location, own string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: missing Location header", ErrMalformedPayload)
	}
	path := location
	if u, err := url.Parse(location); err == nil {
		path = u.Path
	}
	i := strings.LastIndex(path, own)
	if i < 0 {
		return "", fmt.Errorf("%w: Location %q is not under %s", ErrMalformedPayload, location, own)
	}
	id := strings.Trim(path[i+len(own):], "/")
	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: no id in Location %q", ErrMalformedPayload, location)
	}
	return id, nil
}

func formatID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case json.Number:
		return id.String(), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	}
	return "", fmt.Errorf("%w: bad id %v", ErrMalformedPayload, v)
}

func unmarshal(b []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

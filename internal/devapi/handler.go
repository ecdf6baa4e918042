package devapi

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAPIPath is where the API is mounted unless Config says otherwise.
const DefaultAPIPath = "/api/v1"

// Kinds served by the API.
var kinds = map[string]bool{
	"passwordstore":  true,
	"passwordrecord": true,
}

// Config tunes the handler.
type Config struct {
	APIPath  string // defaults to DefaultAPIPath
	Username string // basic auth is required when set
	Password string
	Logger   *slog.Logger
}

type server struct {
	store   Storage
	apiPath string
	cfg     Config
	log     *slog.Logger
}

// New returns the API handler backed by s.
func New(s Storage, cfg Config) http.Handler {
	apiPath := "/" + strings.Trim(cfg.APIPath, "/")
	if apiPath == "/" {
		apiPath = DefaultAPIPath
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &server{store: s, apiPath: apiPath, cfg: cfg, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(srv.accessLog)
	r.Use(middleware.Recoverer)
	if cfg.Username != "" {
		r.Use(srv.basicAuth)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route(apiPath, func(r chi.Router) {
		r.Get("/{kind}/", srv.list)
		r.Post("/{kind}/", srv.create)
		r.Get("/{kind}/{id}/", srv.get)
		r.Patch("/{kind}/{id}/", srv.patch)
		r.Put("/{kind}/{id}/", srv.put)
		r.Delete("/{kind}/{id}/", srv.delete)
	})
	return r
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	objs, err := s.store.List(kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items := make([]map[string]any, 0, len(objs))
	for _, o := range objs {
		items = append(items, s.render(kind, o))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meta": map[string]any{
			"limit":       len(items),
			"offset":      0,
			"total_count": len(items),
			"next":        nil,
			"previous":    nil,
		},
		"objects": items,
	})
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r)
	if !ok {
		return
	}
	data, ok := decodeObject(w, r)
	if !ok {
		return
	}
	id, err := s.store.Create(kind, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", s.uri(kind, id))
	writeJSON(w, http.StatusCreated, s.render(kind, Object{ID: id, Data: data}))
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	obj, found, err := s.store.Get(kind, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.render(kind, obj))
}

func (s *server) patch(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	changes, ok := decodeObject(w, r)
	if !ok {
		return
	}
	obj, found, err := s.store.Get(kind, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if obj.Data == nil {
		obj.Data = make(map[string]any)
	}
	maps.Copy(obj.Data, changes)
	if _, err := s.store.Replace(kind, id, obj.Data); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, s.render(kind, obj))
}

func (s *server) put(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	data, ok := decodeObject(w, r)
	if !ok {
		return
	}
	found, err := s.store.Replace(kind, id, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := s.kindAndID(w, r)
	if !ok {
		return
	}
	found, err := s.store.Delete(kind, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) kind(w http.ResponseWriter, r *http.Request) (string, bool) {
	kind := chi.URLParam(r, "kind")
	if !kinds[kind] {
		http.Error(w, "not found", http.StatusNotFound)
		return "", false
	}
	return kind, true
}

func (s *server) kindAndID(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	kind, ok := s.kind(w, r)
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return "", 0, false
	}
	return kind, id, true
}

func (s *server) uri(kind string, id int64) string {
	return s.apiPath + "/" + kind + "/" + strconv.FormatInt(id, 10) + "/"
}

func (s *server) render(kind string, o Object) map[string]any {
	out := maps.Clone(o.Data)
	if out == nil {
		out = make(map[string]any)
	}
	out["id"] = o.ID
	out["resource_uri"] = s.uri(kind, o.ID)
	return out
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "storage failure",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.Password)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="eightyseven"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// decodeObject reads a JSON object body, dropping the server-owned fields.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	defer r.Body.Close()
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data == nil {
		http.Error(w, "body must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	delete(data, "id")
	delete(data, "resource_uri")
	return data, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

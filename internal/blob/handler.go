// Package blob implements the versioned-blob HTTP contract the remote
// document backend speaks: GET returns the blob with an ETag revision
// token, PUT requires credentials plus the previously read token and is
// rejected with 409 when the stored revision has moved on. It backs the
// remote backend tests and doubles as a development endpoint.
package blob

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

const maxBlobSize = 8 << 20

// Handler holds a single versioned blob behind the HTTP contract.
type Handler struct {
	username string
	password string

	mu          sync.Mutex
	data        []byte
	version     string
	lastMessage string
}

type HandlerOpt func(*Handler)

// WithAuth requires basic-auth credentials on writes.
func WithAuth(username, password string) HandlerOpt {
	return func(h *Handler) {
		h.username = username
		h.password = password
	}
}

func NewHandler(opts ...HandlerOpt) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Version returns the current revision token, empty when no blob is stored.
func (h *Handler) Version() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

// LastMessage returns the commit message of the most recent write.
func (h *Handler) LastMessage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastMessage
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w)
	case http.MethodPut, http.MethodPost:
		h.put(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) get(w http.ResponseWriter) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.data) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	sum := md5.Sum(h.data)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", fmt.Sprintf("%q", h.version))
	w.Header().Set("Content-MD5", base64.StdEncoding.EncodeToString(sum[:]))
	if _, err := w.Write(h.data); err != nil {
		slog.Warn("writing blob response", "error", err)
	}
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	if h.username != "" {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(h.username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(h.password)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBlobSize+1))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if len(data) == 0 || len(data) > maxBlobSize {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if raw := r.Header.Get("Content-MD5"); raw != "" {
		sum, err := base64.StdEncoding.DecodeString(raw)
		if err != nil || len(sum) != md5.Size || md5.Sum(data) != [md5.Size]byte(sum) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// The write must carry the token from the most recent read. An
	// empty token is only valid while no blob is stored yet.
	if trimQuotes(r.Header.Get("If-Match")) != h.version {
		w.WriteHeader(http.StatusConflict)
		return
	}

	sum := md5.Sum(data)
	h.data = data
	h.version = hex.EncodeToString(sum[:])
	h.lastMessage = r.Header.Get("X-Commit-Message")

	w.Header().Set("ETag", fmt.Sprintf("%q", h.version))
	w.WriteHeader(http.StatusOK)
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

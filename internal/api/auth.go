package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ticketTTL bounds the window between fetching a WebSocket ticket
	// and opening the connection.
	ticketTTL = 60 * time.Second

	ticketBytes = 32

	// defaultTokenTTLMinutes applies when security.jwt.access_token_ttl
	// is absent from config.yaml.
	defaultTokenTTLMinutes = 15
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleLogin authenticates the operator account and issues an HS256
// JWT. One account per install is the deployment model; there is no
// users table.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if !s.checkCredentials(req.Username, req.Password) {
		writeUnauthorized(w, "invalid credentials")
		return
	}

	ttl := s.secCfg.JWT.AccessTokenTTL
	if ttl == 0 {
		ttl = defaultTokenTTLMinutes
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(ttl) * time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(s.secCfg.JWT.Secret))
	if err != nil {
		writeInternalError(w, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   ttl * 60,
	})
}

// checkCredentials compares against the configured operator account in
// constant time.
func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.secCfg.Operator.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.secCfg.Operator.Password)) == 1
	return userOK && passOK
}

// ticketStore issues single-use WebSocket tickets. Browsers cannot set
// an Authorization header on a WebSocket upgrade, so an authenticated
// client first fetches a short-lived ticket and passes it as a query
// parameter instead of leaking the JWT into URLs and access logs.
type ticketStore struct {
	mu      sync.Mutex
	pending map[string]time.Time // ticket -> expiry
}

func newTicketStore() *ticketStore {
	return &ticketStore{pending: make(map[string]time.Time)}
}

// issue mints a random ticket valid for ticketTTL.
func (ts *ticketStore) issue() string {
	b := make([]byte, ticketBytes)
	rand.Read(b) //nolint:errcheck // never fails on supported platforms
	ticket := hex.EncodeToString(b)

	ts.mu.Lock()
	ts.pending[ticket] = time.Now().Add(ticketTTL)
	ts.mu.Unlock()
	return ticket
}

// redeem consumes a ticket, reporting whether it was live. A ticket
// redeems at most once.
func (ts *ticketStore) redeem(ticket string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	expiry, ok := ts.pending[ticket]
	if !ok {
		return false
	}
	delete(ts.pending, ticket)
	return time.Now().Before(expiry)
}

// sweep drops expired tickets that were never redeemed.
func (ts *ticketStore) sweep() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	for ticket, expiry := range ts.pending {
		if now.After(expiry) {
			delete(ts.pending, ticket)
		}
	}
}

// run sweeps periodically until the context is cancelled.
func (ts *ticketStore) run(ctx context.Context) {
	ticker := time.NewTicker(ticketTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ts.sweep()
		}
	}
}

// handleWSTicket issues a WebSocket ticket to an authenticated operator.
func (s *Server) handleWSTicket(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ticket":     s.tickets.issue(),
		"expires_in": int(ticketTTL.Seconds()),
	})
}

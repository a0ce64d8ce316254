package session

import (
	"encoding/base32"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// DefaultTTL is the absolute session lifetime, measured from creation.
const DefaultTTL = 7 * 24 * time.Hour

type memorySession struct {
	values  map[interface{}]interface{}
	created time.Time
}

// MemoryStore keeps session values server side in a map keyed by session
// ID; the cookie carries only the securecookie-signed ID. Expiry is
// absolute: a session dies TTL after creation no matter how recently it was
// touched. Any other sessions.Store can be swapped in without the rest of
// the code noticing.
type MemoryStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	TTL     time.Duration

	mu   sync.RWMutex
	data map[string]*memorySession

	now func() time.Time
}

func NewMemoryStore(keyPairs ...[]byte) *MemoryStore {
	return &MemoryStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(DefaultTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		TTL:  DefaultTTL,
		data: make(map[string]*memorySession),
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *MemoryStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		// A tampered or stale cookie silently yields a fresh session.
		return session, nil
	}

	s.mu.RLock()
	stored, ok := s.data[id]
	s.mu.RUnlock()
	if !ok || s.now().Sub(stored.created) > s.TTL {
		return session, nil
	}

	session.ID = id
	session.IsNew = false
	session.Values = copyValues(stored.values)
	return session, nil
}

func (s *MemoryStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		s.mu.Lock()
		delete(s.data, session.ID)
		s.mu.Unlock()
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	s.mu.Lock()
	if session.ID == "" {
		session.ID = newSessionID()
		s.data[session.ID] = &memorySession{
			values:  copyValues(session.Values),
			created: s.now(),
		}
	} else if stored, ok := s.data[session.ID]; ok {
		stored.values = copyValues(session.Values)
	} else {
		s.data[session.ID] = &memorySession{
			values:  copyValues(session.Values),
			created: s.now(),
		}
	}
	s.mu.Unlock()

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func newSessionID() string {
	return base32.StdEncoding.WithPadding(base32.NoPadding).
		EncodeToString(securecookie.GenerateRandomKey(32))
}

func copyValues(in map[interface{}]interface{}) map[interface{}]interface{} {
	out := make(map[interface{}]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

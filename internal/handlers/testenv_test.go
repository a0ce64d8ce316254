package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopworks/supermarket/internal/handlers"
	"github.com/shopworks/supermarket/internal/hash"
	"github.com/shopworks/supermarket/internal/httpserver"
	authmw "github.com/shopworks/supermarket/internal/middleware/auth"
	"github.com/shopworks/supermarket/internal/models"
	"github.com/shopworks/supermarket/internal/session"
	"github.com/shopworks/supermarket/internal/upload"
	"github.com/shopworks/supermarket/internal/view"
)

type testEnv struct {
	E         *echo.Echo
	DB        *gorm.DB
	Sessions  *session.Manager
	UploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	renderer, err := view.New()
	require.NoError(t, err)

	sessions := session.NewManager(session.NewMemoryStore([]byte("test-secret")))
	uploadDir := t.TempDir()

	e := echo.New()
	e.Renderer = renderer

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &handlers.AuthHandler{DB: db, Sessions: sessions},
		Products: &handlers.ProductHandler{DB: db, Images: &upload.DiskStore{Dir: uploadDir}, Sessions: sessions},
		Cart:     &handlers.CartHandler{DB: db, Sessions: sessions},
		Guard:    &authmw.Guard{Sessions: sessions},
	})

	return &testEnv{E: e, DB: db, Sessions: sessions, UploadDir: uploadDir}
}

func (env *testEnv) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) postMultipart(t *testing.T, path string, fields map[string]string, fileName string, content []byte, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// mergeCookies folds a response's Set-Cookie headers into an existing jar;
// a later cookie for the same name wins.
func mergeCookies(jar []*http.Cookie, rec *httptest.ResponseRecorder) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	order := make([]string, 0, len(jar))
	for _, ck := range jar {
		if _, seen := byName[ck.Name]; !seen {
			order = append(order, ck.Name)
		}
		byName[ck.Name] = ck
	}
	for _, ck := range rec.Result().Cookies() {
		if _, seen := byName[ck.Name]; !seen {
			order = append(order, ck.Name)
		}
		byName[ck.Name] = ck
	}
	out := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func (env *testEnv) createUser(t *testing.T, username, email, password, role string) models.User {
	t.Helper()

	digest, err := hash.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Address:      "1 Main St",
		Contact:      "555-0100",
		Role:         role,
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	rec := env.postForm("/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	return mergeCookies(nil, rec)
}

// cart reads the session cart the way a handler would, through a context
// built from the jar.
func (env *testEnv) cart(cookies []*http.Cookie) session.Cart {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c := env.E.NewContext(req, httptest.NewRecorder())
	return env.Sessions.Cart(c)
}

func (env *testEnv) userCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.DB.Model(&models.User{}).Count(&n).Error)
	return n
}

func (env *testEnv) productCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&n).Error)
	return n
}

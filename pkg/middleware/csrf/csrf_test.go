package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Middleware(Config{})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestMiddleware_SafeMethodIssuesToken(t *testing.T) {
	rec, err := serve(t, httptest.NewRequest(http.MethodGet, "http://example.com/cart", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestMiddleware_UnsafeMethod(t *testing.T) {
	newReq := func(header string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "http://example.com/checkout", nil)
		req.Header.Set("Origin", "http://example.com")
		req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		return req
	}

	_, err := serve(t, newReq("tok"))
	require.NoError(t, err)

	_, err = serve(t, newReq(""))
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	_, err = serve(t, newReq("other"))
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))

	foreign := newReq("tok")
	foreign.Header.Set("Origin", "http://evil.test")
	_, err = serve(t, foreign)
	assert.Equal(t, http.StatusForbidden, httpCode(t, err))
}

func TestMiddleware_BearerPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/checkout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	_, err := serve(t, req)
	require.NoError(t, err)
}

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	httpx "github.com/geocoder89/coursehub/internal/http"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(httpx.Templates())

	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	return w
}

func doPostForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	return w
}

// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/korrel8r/implindex/internal/pkg/test"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hasher = "core::hash::Hasher"
	not    = "core::ops::Not"
)

func hasherRegistry() *registry.Registry {
	r := registry.New()
	r.Submit(*implementors.NewContribution(hasher).Add("bytes").Add("mio"))
	r.Submit(*implementors.NewContribution(hasher).Add("sirpent", "impl Hasher for DefaultHasher"))
	r.Install()
	r.Submit(*implementors.NewContribution(not).Add("mio", "impl Not for Ready"))
	return r
}

func TestAPI_Capabilities(t *testing.T) {
	a := newTestAPI(t, hasherRegistry())
	assertDo(t, a, "GET", BasePath+"/capabilities", nil, 200, []registry.Summary{
		{Capability: hasher, Units: 3, Implementors: 1},
		{Capability: not, Units: 1, Implementors: 1},
	})
}

func TestAPI_Capabilities_empty(t *testing.T) {
	a := newTestAPI(t, registry.New())
	w := do(t, a, "GET", BasePath+"/capabilities", nil)
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAPI_Capability(t *testing.T) {
	a := newTestAPI(t, hasherRegistry())
	assertDo(t, a, "GET", BasePath+"/capabilities/"+hasher, nil, 200, Capability{
		Capability: hasher,
		Entries: []implementors.Entry{
			{Unit: "bytes", Implementors: []implementors.Descriptor{}},
			{Unit: "mio", Implementors: []implementors.Descriptor{}},
			{Unit: "sirpent", Implementors: []implementors.Descriptor{"impl Hasher for DefaultHasher"}},
		},
	})
	assertDo(t, a, "GET", BasePath+"/capabilities/"+hasher+"?exclude=mio&exclude=bytes", nil, 200, Capability{
		Capability: hasher,
		Entries:    []implementors.Entry{{Unit: "sirpent", Implementors: []implementors.Descriptor{"impl Hasher for DefaultHasher"}}},
	})
}

func TestAPI_Capability_defaultExclude(t *testing.T) {
	a := newTestAPI(t, hasherRegistry(), "sirpent", "mio")
	assertDo(t, a, "GET", BasePath+"/capabilities/"+hasher, nil, 200, Capability{
		Capability: hasher,
		Entries:    []implementors.Entry{{Unit: "bytes", Implementors: []implementors.Descriptor{}}},
	})
	// Explicit empty exclude overrides the default.
	w := do(t, a, "GET", BasePath+"/capabilities/"+not+"?exclude=", nil)
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"capability":"core::ops::Not","entries":[{"unit":"mio","implementors":["impl Not for Ready"]}]}`, w.Body.String())
}

func TestAPI_Capability_notFound(t *testing.T) {
	a := newTestAPI(t, hasherRegistry())
	w := do(t, a, "GET", BasePath+"/capabilities/std::io::Read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"capability not found: \"std::io::Read\""}`, w.Body.String())
}

func TestAPI_Unit(t *testing.T) {
	a := newTestAPI(t, hasherRegistry())
	for _, x := range []struct {
		url  string
		code int
		body string
	}{
		{"/capabilities/" + hasher + "/units/sirpent", 200, `["impl Hasher for DefaultHasher"]`},
		{"/capabilities/" + hasher + "/units/bytes", 200, `[]`}, // Present but empty
		{"/capabilities/" + hasher + "/units/tokio", 404, `{"error":"unit \"tokio\" has no entry for capability core::hash::Hasher"}`},
		{"/capabilities/nope::Nope/units/bytes", 404, `{"error":"capability not found: \"nope::Nope\""}`},
	} {
		t.Run(x.url, func(t *testing.T) {
			w := do(t, a, "GET", BasePath+x.url, nil)
			assert.Equal(t, x.code, w.Code)
			assert.JSONEq(t, x.body, w.Body.String())
		})
	}
}

func TestAPI_Status(t *testing.T) {
	r := registry.New()
	r.Submit(*implementors.NewContribution(hasher).Add("bytes"))
	a := newTestAPI(t, r)
	assertDo(t, a, "GET", BasePath+"/status", nil, 200, map[string]any{"state": "absent", "pending": 1, "capabilities": 0})
	assertDo(t, a, "GET", BasePath+"/pending", nil, 200, []implementors.Contribution{
		*implementors.NewContribution(hasher).Add("bytes"),
	})
	r.Install()
	assertDo(t, a, "GET", BasePath+"/status", nil, 200, map[string]any{"state": "installed", "pending": 0, "capabilities": 1})
	assertDo(t, a, "GET", BasePath+"/pending", nil, 200, []implementors.Contribution{})
}

func TestAPI_PutConfig(t *testing.T) {
	a := newTestAPI(t, registry.New())
	defer func() { _ = do(t, a, "PUT", BasePath+"/config?verbose=0", nil) }()
	assertDo(t, a, "PUT", BasePath+"/config?verbose=3", nil, 200, Config{Verbose: ptr(3)})
	w := do(t, a, "PUT", BasePath+"/config?verbose=loud", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Root(t *testing.T) {
	a := newTestAPI(t, registry.New())
	w := do(t, a, "GET", "/", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, BasePath+"/capabilities", w.Header().Get("Location"))
}

func ptr[T any](v T) *T { return &v }

func ginEngine() *gin.Engine {
	if os.Getenv(gin.EnvGinMode) == "" { // Don't override an explicit env setting.
		gin.SetMode(gin.TestMode)
	}
	r := gin.New()
	return r
}

type testAPI struct {
	*API
	Router *gin.Engine
}

func newTestAPI(t *testing.T, r *registry.Registry, exclude ...implementors.Unit) *testAPI {
	router := ginEngine()
	a, err := New(r, exclude, router)
	require.NoError(t, err)
	return &testAPI{API: a, Router: router}
}

func do(t *testing.T, a *testAPI, method, url string, body any) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var r io.Reader
	if body != nil {
		r = strings.NewReader(test.JSONString(body))
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		w.Code = http.StatusBadRequest
		fmt.Fprintln(w, err.Error())
	} else {
		a.Router.ServeHTTP(w, req)
	}
	return w
}

func assertDo[T any](t *testing.T, a *testAPI, method, url string, req any, code int, want T) {
	t.Helper()
	w := do(t, a, method, url, req)
	if assert.Equal(t, code, w.Code, w.Body.String()) {
		var got T
		if assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), "body: %v", w.Body.String()) {
			if assert.JSONEq(t, test.JSONPretty(want), test.JSONPretty(got)) {
				return
			}
		}
	}
	t.Logf("request: %v", test.JSONString(req)) // Log the request body on error.
}

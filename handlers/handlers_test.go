// handlers/handlers_test.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gewnthar/flightops/app"
	"github.com/gewnthar/flightops/config"
	"github.com/gewnthar/flightops/logging"
	"github.com/gewnthar/flightops/services"
)

const sampleMetarJSON = `{"results":1,"data":[{
	"icao":"MKJP",
	"raw_text":"MKJP 191200Z 12025KT 9999 FEW020 30/24 Q1012",
	"station":{"name":"Norman Manley International"},
	"temperature":{"celsius":30,"fahrenheit":86},
	"wind":{"degrees":120,"speed_kts":25,"speed_kph":46,"speed_mph":29},
	"humidity":{"percent":70},
	"clouds":[{"code":"FEW","text":"Few","feet":2000}]
}]}`

const emptyJSON = `{"results":0,"data":[]}`

const rankingDataSet = `<?xml version="1.0" encoding="utf-8"?>
<message:GenericData xmlns:message="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message" xmlns:generic="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/data/generic">
  <message:DataSet>
    <generic:Obs><generic:ObsKey><generic:Value id="REF_AREA" value="JAM"/><generic:Value id="TIME_PERIOD" value="2022-01"/></generic:ObsKey><generic:ObsValue value="10"/></generic:Obs>
    <generic:Obs><generic:ObsKey><generic:Value id="REF_AREA" value="USA"/><generic:Value id="TIME_PERIOD" value="2022-01"/></generic:ObsKey><generic:ObsValue value="1000"/></generic:Obs>
    <generic:Obs><generic:ObsKey><generic:Value id="REF_AREA" value="USA"/><generic:Value id="TIME_PERIOD" value="2022-02"/></generic:ObsKey><generic:ObsValue value="500"/></generic:Obs>
    <generic:Obs><generic:ObsKey><generic:Value id="REF_AREA" value="GBR"/><generic:Value id="TIME_PERIOD" value="2022-01"/></generic:ObsKey><generic:ObsValue value="300"/></generic:Obs>
  </message:DataSet>
</message:GenericData>`

const emptyDataSet = `<?xml version="1.0" encoding="utf-8"?>
<message:GenericData xmlns:message="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"><message:DataSet/></message:GenericData>`

// newUpstream fakes CheckWX under /wx/ and the SDMX service under /sdmx/.
// Only MKJP has weather. Wildcard-country queries get the ranking data set,
// USA reports are empty and every other report gets the JAM annual series.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	genericData, err := os.ReadFile(filepath.Join("..", "external", "testdata", "generic_data.xml"))
	if err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/wx/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/wx/metar/MKJP/nearest/decoded" {
			io.WriteString(w, sampleMetarJSON)
			return
		}
		io.WriteString(w, emptyJSON)
	})
	mux.HandleFunc("/sdmx/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		switch {
		case strings.Contains(r.URL.Path, "/.M."):
			io.WriteString(w, rankingDataSet)
			return
		case strings.Contains(r.URL.Path, "/USA."):
			io.WriteString(w, emptyDataSet)
			return
		}
		w.Write(genericData)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	t      *testing.T
	app    *app.App
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	upstream := newUpstream(t)

	cfg := config.Default()
	cfg.Server.SessionKey = "0123456789abcdef0123456789abcdef"
	cfg.Server.PasswordIterations = 1000
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "flightops.db")}
	cfg.HTTPClient.Timeout = 5 * time.Second
	cfg.HTTPClient.Retries = 0
	cfg.CheckWX.BaseURL = upstream.URL + "/wx"
	cfg.SDMX.BaseURL = upstream.URL + "/sdmx"
	cfg.Countries.URL = ""
	cfg.Countries.CacheTTL = time.Hour
	cfg.Prediction.ModelPath = filepath.Join(t.TempDir(), "missing.msgpack")
	cfg.Reference.DownloadDir = t.TempDir()

	a, err := app.New(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	h, err := New(a)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return &testEnv{t: t, app: a, server: srv}
}

// client returns a cookie-keeping client that does not follow redirects.
func (e *testEnv) client() *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		e.t.Fatal(err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) createUser(username, password, role string) {
	e.t.Helper()
	_, err := e.app.Users.CreateUser(context.Background(), services.NewUser{
		FirstName: "Test", LastName: "User", Username: username, Password: password, Role: role,
	})
	if err != nil {
		e.t.Fatalf("CreateUser %s: %v", username, err)
	}
}

// login logs c in and fails the test unless the login redirects to "/".
func (e *testEnv) login(c *http.Client, username, password string) {
	e.t.Helper()
	resp := e.postForm(c, "/login", url.Values{"username": {username}, "password": {password}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/" {
		e.t.Fatalf("login %s: status %d location %q", username, resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (e *testEnv) get(c *http.Client, path string) *http.Response {
	e.t.Helper()
	resp, err := c.Get(e.server.URL + path)
	if err != nil {
		e.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) postForm(c *http.Client, path string, form url.Values) *http.Response {
	e.t.Helper()
	resp, err := c.PostForm(e.server.URL+path, form)
	if err != nil {
		e.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) postJSON(c *http.Client, path, body string) *http.Response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(body))
	if err != nil {
		e.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		e.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) document(resp *http.Response) *goquery.Document {
	e.t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

func flashes(doc *goquery.Document) []string {
	var out []string
	doc.Find(".flash").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func hasFlash(doc *goquery.Document, msg string) bool {
	for _, f := range flashes(doc) {
		if f == msg {
			return true
		}
	}
	return false
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
}

package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/gommon/log"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func TestDecodeArticles(t *testing.T) {
	articles, err := DecodeArticles([]byte(`[{"id":2,"title":"B"},{"id":1,"title":"A"}]`))
	if err != nil {
		t.Fatalf("DecodeArticles failed: %v", err)
	}
	if len(articles) != 2 || articles[0].ID != "2" || articles[1].ID != "1" {
		t.Errorf("DecodeArticles order = %+v, want ids [2 1]", articles)
	}

	empty, err := DecodeArticles([]byte(` [] `))
	if err != nil {
		t.Fatalf("DecodeArticles([]) failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("DecodeArticles([]) = %#v, want empty non-nil slice", empty)
	}
}

func TestDecodeArticlesRejectsOtherShapes(t *testing.T) {
	for _, body := range []string{``, `null`, `{"articles":[]}`, `"x"`, `[{"id":1,`, `[1,2]`} {
		_, err := DecodeArticles([]byte(body))
		fe, ok := AsFetchError(err)
		if !ok {
			t.Errorf("DecodeArticles(%q) error = %v, want *FetchError", body, err)
			continue
		}
		if fe.Kind != KindDecode {
			t.Errorf("DecodeArticles(%q) kind = %v, want decode", body, fe.Kind)
		}
	}
}

func TestHTTPFetcherSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":2,"title":"Second","tags":["go"]},{"id":1,"title":"First"}]`)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/api/articles", WithFetcherLogger(quietLogger()))
	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("requests = %d, want 1", hits.Load())
	}
	if len(articles) != 2 || articles[0].Title != "Second" || articles[1].Title != "First" {
		t.Errorf("Fetch order = %+v", articles)
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, WithFetcherLogger(quietLogger())).Fetch(context.Background())
	fe, ok := AsFetchError(err)
	if !ok {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != KindHTTPStatus || fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("got kind %v status %d, want http_status 500", fe.Kind, fe.StatusCode)
	}
	if got, want := err.Error(), "Request failed with status code 500"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHTTPFetcherDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>not json</html>`)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, WithFetcherLogger(quietLogger())).Fetch(context.Background())
	fe, ok := AsFetchError(err)
	if !ok || fe.Kind != KindDecode {
		t.Fatalf("expected decode FetchError, got %v", err)
	}
}

func TestHTTPFetcherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(url, WithFetcherLogger(quietLogger())).Fetch(context.Background())
	fe, ok := AsFetchError(err)
	if !ok || fe.Kind != KindTransport {
		t.Fatalf("expected transport FetchError, got %v", err)
	}
	if err.Error() == "" {
		t.Error("transport error should carry a message")
	}
}

func TestHTTPFetcherHonorsCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := NewHTTPFetcher(srv.URL, WithFetcherLogger(quietLogger())).Fetch(ctx)
		errc <- err
	}()
	cancel()
	err := <-errc
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch after cancel = %v, want context.Canceled in chain", err)
	}
}

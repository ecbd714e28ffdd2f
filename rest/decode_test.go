package rest

import (
	"context"
	"testing"
	"time"

	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/httpclient"
	"github.com/kbukum/restmapper/mapping"
)

type video struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	Tags      []string      `json:"tags"`
	Published time.Time     `json:"published"`
	Length    time.Duration `json:"length"`
	Author    struct {
		Name string `json:"name"`
	} `json:"author"`
}

func TestAs(t *testing.T) {
	decoded := map[string]any{
		"id":        float64(3),
		"title":     "clip",
		"tags":      []any{"a", "b"},
		"published": "2026-03-02T10:30:00Z",
		"length":    "1m30s",
		"author":    map[string]any{"name": "ricardo"},
		"ignored":   true,
	}
	v, err := As[video](decoded)
	if err != nil {
		t.Fatalf("As() error = %v", err)
	}
	if v.ID != 3 || v.Title != "clip" || len(v.Tags) != 2 || v.Author.Name != "ricardo" {
		t.Errorf("unexpected video %+v", v)
	}
	if v.Published.Year() != 2026 || v.Length != 90*time.Second {
		t.Errorf("hooks not applied: %v %v", v.Published, v.Length)
	}

	ids, err := As[[]int]([]any{float64(1), float64(2), float64(3)})
	if err != nil || len(ids) != 3 || ids[2] != 3 {
		t.Errorf("As[[]int] = %v, %v", ids, err)
	}

	if _, err := As[video]("not an object"); err == nil {
		t.Error("expected error for a scalar result")
	}
}

func TestCall(t *testing.T) {
	spy := &spyTransport{resp: &httpclient.Response{StatusCode: 200, Body: []byte(`{"id":1,"title":"clip"}`)}}
	c := newTestClient(t, "http://foo.sub.com/rest/v1", WithTransport(spy))

	v, err := Call[video](context.Background(), c, mapping.KindGet, "video", mapping.Entity{"id": 1})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if v.ID != 1 || v.Title != "clip" {
		t.Errorf("unexpected video %+v", v)
	}
	if spy.last.URL != "http://foo.sub.com/rest/v1/video/1" || spy.last.Method != "GET" {
		t.Errorf("unexpected request %+v", spy.last)
	}

	spy.resp = &httpclient.Response{StatusCode: 404, Body: []byte(`{}`)}
	if _, err := Call[video](context.Background(), c, mapping.KindGet, "video", mapping.Entity{"id": 2}); !errors.IsNotFound(err) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

package urlbuilder

import (
	"testing"

	"github.com/kbukum/restmapper/codec"
	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/mapping"
)

const base = "http://foo.sub.com/rest/v1"

func newBuilder(t *testing.T, baseURL string, cfg mapping.Config, opts ...Option) *Builder {
	t.Helper()
	b, err := New(baseURL, cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func mustBuild(t *testing.T, b *Builder, kind mapping.Kind, typeName string, entity mapping.Entity) *Request {
	t.Helper()
	req, ok, err := b.Build(kind, typeName, entity)
	if err != nil {
		t.Fatalf("Build(%s, %s): %v", kind, typeName, err)
	}
	if !ok {
		t.Fatalf("Build(%s, %s): not mapped", kind, typeName)
	}
	return req
}

type want struct {
	url     string
	method  string
	body    string
	hasBody bool
}

func check(t *testing.T, req *Request, w want) {
	t.Helper()
	if req.URL != w.url {
		t.Errorf("url = %s, want %s", req.URL, w.url)
	}
	if req.Method != w.method {
		t.Errorf("method = %s, want %s", req.Method, w.method)
	}
	if req.HasBody != w.hasBody {
		t.Errorf("hasBody = %v, want %v", req.HasBody, w.hasBody)
	}
	if string(req.Body) != w.body {
		t.Errorf("body = %s, want %s", req.Body, w.body)
	}
}

func TestInsert(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Insert: map[string]mapping.Directive{
			"media/video": {},
			"media/audio": {Method: "PUT"},
		},
	})

	video, _, _ := b.Insert("media/video", mapping.Entity{"ext": "mov"})
	check(t, video, want{base + "/media/video", "POST", `{"ext":"mov"}`, true})

	audio, _, _ := b.Insert("media/audio", mapping.Entity{"ext": "wav"})
	check(t, audio, want{base + "/media/audio", "PUT", `{"ext":"wav"}`, true})
}

func TestInsertScenario(t *testing.T) {
	b := newBuilder(t, "http://h/api", mapping.Config{
		Insert: map[string]mapping.Directive{"media/audio": {Method: "PUT"}},
	})
	req := mustBuild(t, b, mapping.KindInsert, "media/audio", mapping.Entity{"ext": "wav"})
	check(t, req, want{"http://h/api/media/audio", "PUT", `{"ext":"wav"}`, true})
}

func TestUpdate(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Update: map[string]mapping.Directive{
			"media/video": {},
			"media/image": {Append: mapping.Suppressed()},
			"media/text":  {Append: mapping.Explicit("name")},
			"media/audio": {Method: "POST"},
		},
	})

	tests := []struct {
		typeName string
		entity   mapping.Entity
		want     want
	}{
		{"media/video", mapping.Entity{"id": 12, "ext": "mov"}, want{base + "/media/video/12", "PUT", `{"ext":"mov","id":12}`, true}},
		{"media/image", mapping.Entity{"id": 13, "ext": "jpg"}, want{base + "/media/image", "PUT", `{"ext":"jpg","id":13}`, true}},
		{"media/text", mapping.Entity{"id": 17, "ext": "rtf", "name": "music"}, want{base + "/media/text/music", "PUT", `{"ext":"rtf","id":17,"name":"music"}`, true}},
		{"media/audio", mapping.Entity{"id": 45, "ext": "wav"}, want{base + "/media/audio/45", "POST", `{"ext":"wav","id":45}`, true}},
	}
	for _, tc := range tests {
		t.Run(tc.typeName, func(t *testing.T) {
			req, ok, err := b.Update(tc.typeName, tc.entity)
			if err != nil || !ok {
				t.Fatalf("Update: ok=%v err=%v", ok, err)
			}
			check(t, req, tc.want)
		})
	}
}

func TestDelete(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Delete: map[string]mapping.Directive{
			"media/video": {},
			"media/image": {Append: mapping.Suppressed()},
			"media/text":  {Append: mapping.Explicit("name")},
			"media/audio": {Method: "POST"},
		},
	})

	tests := []struct {
		typeName string
		entity   mapping.Entity
		want     want
	}{
		{"media/video", mapping.Entity{"id": 12}, want{base + "/media/video/12", "DELETE", "", false}},
		{"media/image", mapping.Entity{"id": 13}, want{base + "/media/image", "DELETE", "", false}},
		{"media/text", mapping.Entity{"id": 17, "name": "music"}, want{base + "/media/text/music", "DELETE", "", false}},
		{"media/audio", mapping.Entity{"id": 45, "ext": "wav"}, want{base + "/media/audio/45", "POST", "", false}},
	}
	for _, tc := range tests {
		t.Run(tc.typeName, func(t *testing.T) {
			req, ok, err := b.Delete(tc.typeName, tc.entity)
			if err != nil || !ok {
				t.Fatalf("Delete: ok=%v err=%v", ok, err)
			}
			check(t, req, tc.want)
		})
	}
}

func TestGet(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Get: map[string]mapping.Directive{
			"media/video":        {},
			"media/image":        {Append: mapping.Suppressed()},
			"media/text":         {Append: mapping.Explicit("name")},
			"media/text/words":   {Insert: "text"},
			"media/text/images":  {Insert: "text", Append: mapping.Suppressed()},
			"media/text/titles":  {Insert: "text", Append: mapping.Explicit("name")},
			"media/audio":        {Method: "HEAD"},
			"media/text/written": {Insert: "text", Query: []string{"lang", "page"}},
		},
	})
	text := mapping.Entity{"id": 17, "text": "10", "name": "music"}

	tests := []struct {
		typeName string
		entity   mapping.Entity
		want     want
	}{
		{"media/video", mapping.Entity{"id": 12}, want{base + "/media/video/12", "GET", "", false}},
		{"media/image", mapping.Entity{"id": 13, "ext": "jpg"}, want{base + "/media/image", "GET", "", false}},
		{"media/text", text, want{base + "/media/text/music", "GET", "", false}},
		{"media/text/words", text, want{base + "/media/text/10/words/17", "GET", "", false}},
		{"media/text/images", text, want{base + "/media/text/10/images", "GET", "", false}},
		{"media/text/titles", text, want{base + "/media/text/10/titles/music", "GET", "", false}},
		{"media/audio", mapping.Entity{"id": 45, "ext": "wav"}, want{base + "/media/audio/45", "HEAD", "", false}},
		{"media/text/written", mapping.Entity{"id": 1, "text": 3, "page": 2}, want{base + "/media/text/3/written/1?page=2", "GET", "", false}},
	}
	for _, tc := range tests {
		t.Run(tc.typeName, func(t *testing.T) {
			req, ok, err := b.Get(tc.typeName, tc.entity)
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			check(t, req, tc.want)
		})
	}
}

func TestGetScenario(t *testing.T) {
	b := newBuilder(t, "http://h/api", mapping.Config{
		Get: map[string]mapping.Directive{"media/text/words": {Insert: "text"}},
	})
	req := mustBuild(t, b, mapping.KindGet, "media/text/words", mapping.Entity{"id": 17, "text": "10"})
	if req.URL != "http://h/api/media/text/10/words/17" {
		t.Errorf("url = %s", req.URL)
	}
}

func TestList(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		List: map[string]mapping.Directive{
			"media/video":      {},
			"media/text/words": {Insert: "text"},
			"media/audio":      {Method: "HEAD"},
		},
	})

	video, _, _ := b.List("media/video", mapping.Entity{"id": 12})
	check(t, video, want{base + "/media/video", "GET", "", false})

	words, _, _ := b.List("media/text/words", mapping.Entity{"id": 17, "text": "10", "name": "music"})
	check(t, words, want{base + "/media/text/10/words", "GET", "", false})

	audio, _, _ := b.List("media/audio", mapping.Entity{"id": 45, "ext": "wav"})
	check(t, audio, want{base + "/media/audio", "HEAD", "", false})
}

func TestAssoc(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Assoc: map[string]mapping.Directive{
			"audio/addAuthor":    {Insert: "audio", Data: "authors"},
			"audio/removeAuthor": {Insert: "audio"},
		},
	})

	add, _, _ := b.Assoc("audio/addAuthor", mapping.Entity{"audio": 12, "authors": []int{10, 11, 12}})
	check(t, add, want{base + "/audio/12/addAuthor", "POST", "[10,11,12]", true})

	remove, _, _ := b.Assoc("audio/removeAuthor", mapping.Entity{"audio": 13, "authors": []int{10, 11, 12}})
	check(t, remove, want{base + "/audio/13/removeAuthor", "POST", "", true})
	if remove.Body != nil {
		t.Errorf("expected nil body, got %q", remove.Body)
	}
}

func TestTrailingSlashes(t *testing.T) {
	b := newBuilder(t, base+"///", mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {}},
		Update: map[string]mapping.Directive{"media/video": {}},
		Delete: map[string]mapping.Directive{"media/video": {}},
		Get:    map[string]mapping.Directive{"media/video": {}},
		List:   map[string]mapping.Directive{"media/video": {}},
		Assoc:  map[string]mapping.Directive{"media/video": {Insert: "media"}},
	})

	tests := []struct {
		kind   mapping.Kind
		entity mapping.Entity
		want   string
	}{
		{mapping.KindInsert, mapping.Entity{}, base + "/media/video"},
		{mapping.KindUpdate, mapping.Entity{"id": 10}, base + "/media/video/10"},
		{mapping.KindDelete, mapping.Entity{"id": 12}, base + "/media/video/12"},
		{mapping.KindGet, mapping.Entity{"id": 30}, base + "/media/video/30"},
		{mapping.KindList, mapping.Entity{}, base + "/media/video"},
		{mapping.KindAssoc, mapping.Entity{"media": 10}, base + "/media/10/video"},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			req := mustBuild(t, b, tc.kind, "media/video", tc.entity)
			if req.URL != tc.want {
				t.Errorf("url = %s, want %s", req.URL, tc.want)
			}
		})
	}
}

func TestUnmapped(t *testing.T) {
	b := newBuilder(t, base+"///", mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {}},
		Get:    map[string]mapping.Directive{"media/video": {}},
	})
	for _, k := range mapping.Kinds {
		req, ok, err := b.Build(k, "media/audio", mapping.Entity{"id": 10, "media": 10})
		if ok || req != nil || err != nil {
			t.Errorf("%s: expected not mapped, got req=%v ok=%v err=%v", k, req, ok, err)
		}
	}
}

func TestRewriteAndTranslate(t *testing.T) {
	cfg := mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {RewriteURL: "/teste/$productId/teste2/"}},
		Update: map[string]mapping.Directive{"media/blog": {RewriteURL: "media/product/$productId/blog"}},
		Delete: map[string]mapping.Directive{"media/mediacategory": {RewriteURL: "media/product/$productId/mediacategory", Append: mapping.Suppressed()}},
		Get:    map[string]mapping.Directive{"media/blog": {RewriteURL: "media/product/$productId/blog", Append: mapping.Suppressed()}},
		List:   map[string]mapping.Directive{"profile/blogs": {RewriteURL: "profile/media/product/$productId/blog"}},
		Assoc:  map[string]mapping.Directive{"profile/media/followBlog": {RewriteURL: "profile/media/product/$productId/followBlog"}},
	}
	b := newBuilder(t, base, cfg, WithTranslations(mapping.TranslationMap{"productId": "2"}))

	tests := []struct {
		kind     mapping.Kind
		typeName string
		entity   mapping.Entity
		want     string
	}{
		{mapping.KindInsert, "media/video", mapping.Entity{"ext": "mov"}, base + "/teste/2/teste2/"},
		{mapping.KindUpdate, "media/blog", mapping.Entity{"ext": "wav", "id": 1}, base + "/media/product/2/blog/1"},
		{mapping.KindDelete, "media/mediacategory", mapping.Entity{"id": 12}, base + "/media/product/2/mediacategory"},
		{mapping.KindGet, "media/blog", mapping.Entity{"id": 12}, base + "/media/product/2/blog"},
		{mapping.KindList, "profile/blogs", mapping.Entity{"id": 12}, base + "/profile/media/product/2/blog"},
		{mapping.KindAssoc, "profile/media/followBlog", mapping.Entity{}, base + "/profile/media/product/2/followBlog"},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			req := mustBuild(t, b, tc.kind, tc.typeName, tc.entity)
			if req.URL != tc.want {
				t.Errorf("url = %s, want %s", req.URL, tc.want)
			}
		})
	}
}

func TestRewriteWithoutTranslations(t *testing.T) {
	cfg := mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {RewriteURL: "/teste/teste2/"}},
		Delete: map[string]mapping.Directive{"media/mediacategory": {RewriteURL: "media/product/mediacategory"}},
		Get:    map[string]mapping.Directive{"media/blog": {RewriteURL: "media/product/blog"}},
	}
	b := newBuilder(t, base, cfg, WithTranslations(mapping.TranslationMap{"productId": "2"}))

	if req := mustBuild(t, b, mapping.KindInsert, "media/video", mapping.Entity{"ext": "mov"}); req.URL != base+"/teste/teste2/" {
		t.Errorf("insert url = %s", req.URL)
	}
	if req := mustBuild(t, b, mapping.KindDelete, "media/mediacategory", mapping.Entity{"id": 12}); req.URL != base+"/media/product/mediacategory/12" {
		t.Errorf("delete url = %s", req.URL)
	}
	if req := mustBuild(t, b, mapping.KindGet, "media/blog", mapping.Entity{"id": 12}); req.URL != base+"/media/product/blog/12" {
		t.Errorf("get url = %s", req.URL)
	}
}

func TestTranslateEveryOccurrenceBeforeInsert(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Get: map[string]mapping.Directive{
			"shop": {RewriteURL: "$shop/items/$shop", Insert: "items"},
		},
	}, WithTranslations(mapping.TranslationMap{"shop": "items"}))

	// The translated "items" prefix is the first occurrence, so the insert
	// lands there.
	req := mustBuild(t, b, mapping.KindGet, "shop", mapping.Entity{"id": 5, "items": 9})
	if want := base + "/items/9/items/items/5"; req.URL != want {
		t.Errorf("url = %s, want %s", req.URL, want)
	}
}

func TestMissingFields(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Get:   map[string]mapping.Directive{"media/text/words": {Insert: "text"}},
		Assoc: map[string]mapping.Directive{"audio/addAuthor": {Insert: "audio", Data: "authors"}},
	})

	req := mustBuild(t, b, mapping.KindGet, "media/text/words", mapping.Entity{"text": nil})
	if req.URL != base+"/media/text/words" {
		t.Errorf("url = %s", req.URL)
	}

	req = mustBuild(t, b, mapping.KindAssoc, "audio/addAuthor", mapping.Entity{"audio": 1})
	if !req.HasBody || req.Body != nil {
		t.Errorf("expected explicit empty body, got hasBody=%v body=%q", req.HasBody, req.Body)
	}
}

func TestQuery(t *testing.T) {
	b := newBuilder(t, "http://h/api?token=abc", mapping.Config{
		List: map[string]mapping.Directive{
			"profile/blogs": {Query: []string{"size", "page", "tag", "missing"}},
		},
		Get: map[string]mapping.Directive{
			"profile/blog": {Query: []string{"q"}},
		},
		Delete: map[string]mapping.Directive{
			"profile/blog": {Query: []string{"q"}},
		},
	})

	req := mustBuild(t, b, mapping.KindList, "profile/blogs", mapping.Entity{
		"page": 2,
		"size": 10.0,
		"tag":  []string{"go", "rest api"},
	})
	want := "http://h/api/profile/blogs?token=abc&size=10&page=2&tag=go&tag=rest+api"
	if req.URL != want {
		t.Errorf("url = %s, want %s", req.URL, want)
	}

	req = mustBuild(t, b, mapping.KindGet, "profile/blog", mapping.Entity{"id": 1, "q": map[string]any{"a": 1}})
	if want := "http://h/api/profile/blog/1?token=abc&q=%7B%22a%22%3A1%7D"; req.URL != want {
		t.Errorf("url = %s, want %s", req.URL, want)
	}

	// query only applies to get and list
	req = mustBuild(t, b, mapping.KindDelete, "profile/blog", mapping.Entity{"id": 1, "q": "x"})
	if want := "http://h/api/profile/blog/1?token=abc"; req.URL != want {
		t.Errorf("url = %s, want %s", req.URL, want)
	}
}

func TestHeaders(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Get: map[string]mapping.Directive{"media/video": {}},
	}, WithHeaders(map[string]string{"X-Tenant": "acme", "Accept": "*/*"}))

	r1 := mustBuild(t, b, mapping.KindGet, "media/video", mapping.Entity{"id": 1})
	if r1.Headers["Content-Type"] != "application/json" {
		t.Errorf("content type = %q", r1.Headers["Content-Type"])
	}
	if r1.Headers["Accept"] != "*/*" || r1.Headers["X-Tenant"] != "acme" {
		t.Errorf("headers = %v", r1.Headers)
	}

	r1.Headers["X-Tenant"] = "changed"
	r2 := mustBuild(t, b, mapping.KindGet, "media/video", mapping.Entity{"id": 1})
	if r2.Headers["X-Tenant"] != "acme" {
		t.Error("descriptors must not share header maps")
	}
}

func TestMsgPackCodec(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {}},
	}, WithCodec(codec.MsgPack))

	req := mustBuild(t, b, mapping.KindInsert, "media/video", mapping.Entity{"ext": "mov"})
	if req.Headers["Content-Type"] != "application/msgpack" {
		t.Errorf("content type = %q", req.Headers["Content-Type"])
	}
	var out map[string]any
	if err := codec.MsgPack.Unmarshal(req.Body, &out); err != nil {
		t.Fatal(err)
	}
	if out["ext"] != "mov" {
		t.Errorf("decoded body = %v", out)
	}
}

func TestUnencodableBody(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Insert: map[string]mapping.Directive{"media/video": {}},
	})
	_, ok, err := b.Insert("media/video", mapping.Entity{"ch": make(chan int)})
	if !ok {
		t.Fatal("expected mapped")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNewRejectsRelativeBase(t *testing.T) {
	for _, u := range []string{"", "/rest/v1", "foo.sub.com", "http://[::1"} {
		if _, err := New(u, mapping.Config{}); !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("New(%q) expected INVALID_CONFIG, got %v", u, err)
		}
	}
}

func TestBuilderCopiesMapping(t *testing.T) {
	cfg := mapping.Config{Get: map[string]mapping.Directive{"media/video": {}}}
	b := newBuilder(t, base, cfg)
	delete(cfg.Get, "media/video")
	if _, ok, _ := b.Get("media/video", mapping.Entity{"id": 1}); !ok {
		t.Error("builder must not observe later mapping changes")
	}
}

func TestEntityValuesAreLiteralSegments(t *testing.T) {
	b := newBuilder(t, "http://h/a%2Fb/api?k=1", mapping.Config{
		Get: map[string]mapping.Directive{
			"media/video":      {},
			"media/text/words": {Insert: "text"},
		},
		List: map[string]mapping.Directive{"media/video": {}},
	})

	tests := []struct {
		name     string
		typeName string
		entity   mapping.Entity
		want     string
	}{
		{"traversal id", "media/video", mapping.Entity{"id": "../../admin"}, "http://h/a%2Fb/api/media/video/..%2F..%2Fadmin?k=1"},
		{"dot id", "media/video", mapping.Entity{"id": "."}, "http://h/a%2Fb/api/media/video/%2E?k=1"},
		{"dot dot id", "media/video", mapping.Entity{"id": "../x"}, "http://h/a%2Fb/api/media/video/..%2Fx?k=1"},
		{"slash id", "media/video", mapping.Entity{"id": "a/b"}, "http://h/a%2Fb/api/media/video/a%2Fb?k=1"},
		{"space id", "media/video", mapping.Entity{"id": "a b"}, "http://h/a%2Fb/api/media/video/a%20b?k=1"},
		{"inserted traversal", "media/text/words", mapping.Entity{"id": 1, "text": ".."}, "http://h/a%2Fb/api/media/text/%2E%2E/words/1?k=1"},
		{"inserted slash", "media/text/words", mapping.Entity{"id": 1, "text": "x/../y"}, "http://h/a%2Fb/api/media/text/x%2F..%2Fy/words/1?k=1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := mustBuild(t, b, mapping.KindGet, tc.typeName, tc.entity)
			if req.URL != tc.want {
				t.Errorf("url = %s, want %s", req.URL, tc.want)
			}
		})
	}

	if req := mustBuild(t, b, mapping.KindList, "media/video", nil); req.URL != "http://h/a%2Fb/api/media/video?k=1" {
		t.Errorf("encoded base lost: %s", req.URL)
	}
}

func TestInsertAtTemplateEnd(t *testing.T) {
	b := newBuilder(t, base, mapping.Config{
		Assoc: map[string]mapping.Directive{"audio/author": {Insert: "author"}},
	})
	req := mustBuild(t, b, mapping.KindAssoc, "audio/author", mapping.Entity{"author": 3})
	if want := base + "/audio/author/3/"; req.URL != want {
		t.Errorf("url = %s, want %s", req.URL, want)
	}
}

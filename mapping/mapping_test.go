package mapping

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/restmapper/errors"
)

const sampleYAML = `
insert:
  media/audio:
    method: PUT
update:
  media/video: {}
delete:
  media/video:
    append: uuid
get:
  media/video:
  media/image:
    append: null
  media/text/words:
    insert: text
list:
  profile/blogs:
    rewriteUrl: profile/media/product/$productId/blog
    query: [page, size]
assoc:
  audio/addAuthor:
    insert: audio
    data: authors
`

func TestNormalizeNil(t *testing.T) {
	cfg := Normalize(nil)
	for _, k := range Kinds {
		if cfg.Table(k) == nil {
			t.Errorf("table %s should be non-nil", k)
		}
	}
	if cfg.Len() != 0 {
		t.Errorf("expected empty config, got %d entries", cfg.Len())
	}
}

func TestNormalizeDeepCopy(t *testing.T) {
	src := &Config{
		List: map[string]Directive{"blogs": {Query: []string{"page"}}},
	}
	cfg := Normalize(src)
	src.List["blogs"].Query[0] = "size"
	src.List["other"] = Directive{}

	d, ok := cfg.Lookup(KindList, "blogs")
	if !ok {
		t.Fatal("expected blogs to be mapped")
	}
	if d.Query[0] != "page" {
		t.Errorf("normalized copy shares query slice: %v", d.Query)
	}
	if _, ok := cfg.Lookup(KindList, "other"); ok {
		t.Error("normalized copy shares the table map")
	}
}

func TestNormalizeKeepsDirectivesVerbatim(t *testing.T) {
	cfg := Normalize(&Config{Get: map[string]Directive{"media/video": {}}})
	d, ok := cfg.Lookup(KindGet, "media/video")
	if !ok {
		t.Fatal("expected mapping")
	}
	if d.Method != "" || !d.Append.IsZero() {
		t.Errorf("defaults must not be resolved during normalization: %+v", d)
	}
}

func TestLookupUnmapped(t *testing.T) {
	cfg := Normalize(nil)
	if _, ok := cfg.Lookup(KindGet, "nope"); ok {
		t.Error("expected unmapped")
	}
	if _, ok := cfg.Lookup(Kind(42), "nope"); ok {
		t.Error("expected unmapped for unknown kind")
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if d, _ := cfg.Lookup(KindInsert, "media/audio"); d.Method != "PUT" {
		t.Errorf("insert media/audio method = %q", d.Method)
	}
	if d, ok := cfg.Lookup(KindGet, "media/video"); !ok || d.Append.State() != FieldDefault {
		t.Errorf("null directive should be mapped with defaults: ok=%v %+v", ok, d)
	}
	if d, _ := cfg.Lookup(KindGet, "media/image"); d.Append.State() != FieldSuppressed {
		t.Errorf("append: null should suppress, got %s", d.Append)
	}
	if d, _ := cfg.Lookup(KindDelete, "media/video"); d.Append.Name() != "uuid" {
		t.Errorf("delete append = %s", d.Append)
	}
	d, _ := cfg.Lookup(KindList, "profile/blogs")
	if d.RewriteURL != "profile/media/product/$productId/blog" {
		t.Errorf("rewriteUrl = %q", d.RewriteURL)
	}
	if len(d.Query) != 2 || d.Query[0] != "page" || d.Query[1] != "size" {
		t.Errorf("query = %v", d.Query)
	}
	if d, _ := cfg.Lookup(KindAssoc, "audio/addAuthor"); d.Insert != "audio" || d.Data != "authors" {
		t.Errorf("assoc directive = %+v", d)
	}
}

func TestParseJSONDocument(t *testing.T) {
	doc := `{"get": {"media/image": {"append": null}, "media/video": {"append": "slug"}}}`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d, _ := cfg.Lookup(KindGet, "media/image"); d.Append.State() != FieldSuppressed {
		t.Errorf("expected suppressed, got %s", d.Append)
	}
	if d, _ := cfg.Lookup(KindGet, "media/video"); d.Append.Name() != "slug" {
		t.Errorf("expected slug, got %s", d.Append)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("get: [1, 2"))
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}

	_, err = Parse([]byte("get:\n  media/video:\n    append: [a, b]\n"))
	if err == nil {
		t.Fatal("expected error for non-scalar append")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Len() != 8 {
		t.Errorf("expected 8 mappings, got %d", cfg.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFieldJSON(t *testing.T) {
	var d Directive
	if err := json.Unmarshal([]byte(`{"append": null}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.Append.State() != FieldSuppressed {
		t.Errorf("expected suppressed, got %s", d.Append)
	}

	d = Directive{}
	if err := json.Unmarshal([]byte(`{"method": "GET"}`), &d); err != nil {
		t.Fatal(err)
	}
	if !d.Append.IsZero() {
		t.Errorf("expected default, got %s", d.Append)
	}

	out, err := json.Marshal(Directive{Append: Explicit("slug")})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"append":"slug"}` {
		t.Errorf("marshal = %s", out)
	}

	out, _ = json.Marshal(Directive{})
	if string(out) != `{}` {
		t.Errorf("default append should be omitted, got %s", out)
	}

	if err := json.Unmarshal([]byte(`{"append": 3}`), &d); err == nil {
		t.Error("expected error for numeric append")
	}
}

func TestFieldResolve(t *testing.T) {
	tests := []struct {
		name   string
		field  Field
		want   string
		wantOK bool
	}{
		{"default", Field{}, "id", true},
		{"explicit", Explicit("uuid"), "uuid", true},
		{"suppressed", Suppressed(), "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.field.Resolve("id")
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Resolve = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample mapping should validate: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"lower-case method", Config{Get: map[string]Directive{"a": {Method: "get"}}}},
		{"empty append", Config{Get: map[string]Directive{"a": {Append: Explicit("")}}}},
		{"append on insert", Config{Insert: map[string]Directive{"a": {Append: Explicit("id")}}}},
		{"insert on update", Config{Update: map[string]Directive{"a": {Insert: "x"}}}},
		{"query on delete", Config{Delete: map[string]Directive{"a": {Query: []string{"x"}}}}},
		{"empty query entry", Config{List: map[string]Directive{"a": {Query: []string{""}}}}},
		{"data on insert", Config{Insert: map[string]Directive{"a": {Data: "x"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestValidateReportsEveryDirectiveField(t *testing.T) {
	cfg := Config{Insert: map[string]Directive{
		"video": {Method: "post", Append: Explicit("id"), Data: "x", Query: []string{""}},
	}}
	err := cfg.Validate()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	want := "insert[video].append: only applies to update, delete and get; " +
		"insert[video].data: only applies to assoc; " +
		"insert[video].method: must be an upper-case HTTP method; " +
		"insert[video].query: only applies to get and list; " +
		"insert[video].query[0]: is required"
	if appErr.Message != want {
		t.Errorf("message = %q\nwant      %q", appErr.Message, want)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("patch"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestDefaultMethod(t *testing.T) {
	want := map[Kind]string{
		KindInsert: "POST",
		KindUpdate: "PUT",
		KindDelete: "DELETE",
		KindGet:    "GET",
		KindList:   "GET",
		KindAssoc:  "POST",
	}
	for k, m := range want {
		if got := k.DefaultMethod(); got != m {
			t.Errorf("%s.DefaultMethod() = %s, want %s", k, got, m)
		}
	}
}

func TestTranslationMapApply(t *testing.T) {
	tr := TranslationMap{"product": "X", "productId": "2"}
	tests := []struct {
		in, want string
	}{
		{"teste/$productId/teste2/", "teste/2/teste2/"},
		{"$productId/a/$productId", "2/a/2"},
		{"$product/b", "X/b"},
		{"no/placeholders", "no/placeholders"},
		{"$unknown/c", "$unknown/c"},
	}
	for _, tc := range tests {
		if got := tr.Apply(tc.in); got != tc.want {
			t.Errorf("Apply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTranslationMapClone(t *testing.T) {
	var nilMap TranslationMap
	if c := nilMap.Clone(); c == nil {
		t.Error("clone of nil should be empty, not nil")
	}
	src := TranslationMap{"a": "1"}
	c := src.Clone()
	src["a"] = "2"
	if c["a"] != "1" {
		t.Error("clone shares storage")
	}
}

func TestEntityLookup(t *testing.T) {
	e := Entity{"id": 17, "text": nil}
	if v, ok := e.Lookup("id"); !ok || v != 17 {
		t.Errorf("Lookup(id) = %v, %v", v, ok)
	}
	if _, ok := e.Lookup("text"); ok {
		t.Error("nil value should count as absent")
	}
	if _, ok := e.Lookup("missing"); ok {
		t.Error("missing field should be absent")
	}
}

func TestParseTranslationsKeepsCase(t *testing.T) {
	tr, err := ParseTranslations([]byte("productId: \"2\"\nstore: main\n"))
	if err != nil {
		t.Fatalf("ParseTranslations: %v", err)
	}
	if tr["productId"] != "2" || tr["store"] != "main" {
		t.Errorf("unexpected translations %v", tr)
	}
	if _, err := ParseTranslations([]byte("- a\n- b\n")); err == nil {
		t.Error("expected error for a list document")
	}
}

func TestLoadTranslationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translations.yaml")
	if err := os.WriteFile(path, []byte("productId: \"7\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tr, err := LoadTranslationsFile(path)
	if err != nil {
		t.Fatalf("LoadTranslationsFile: %v", err)
	}
	if got := tr.Apply("shop/$productId"); got != "shop/7" {
		t.Errorf("Apply = %q", got)
	}
	if _, err := LoadTranslationsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMerge(t *testing.T) {
	base := Config{
		Get:  map[string]Directive{"video": {}, "user": {Method: "GET"}},
		List: map[string]Directive{"category/videos": {Insert: "category"}},
	}
	override := Config{
		Get:   map[string]Directive{"user": {RewriteURL: "accounts"}},
		Assoc: map[string]Directive{"video/addAuthor": {Insert: "video"}},
	}
	merged := base.Merge(override)

	if merged.Len() != 4 {
		t.Fatalf("expected 4 mappings, got %d", merged.Len())
	}
	if d, _ := merged.Lookup(KindGet, "user"); d.RewriteURL != "accounts" || d.Method != "" {
		t.Errorf("override should replace the directive, got %+v", d)
	}
	if _, ok := base.Lookup(KindAssoc, "video/addAuthor"); ok {
		t.Error("merge must not modify the receiver")
	}
}

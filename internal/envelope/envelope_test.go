package envelope

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestResolveEntity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path string
		want string
	}{
		{"companies", "Company"},
		{"/companies", "Company"},
		{"Companies/5", "Company"},
		{"projectdetailcompanyyears/12", "ProjectDetailCompanyYear"},
		{"users/3", "User"},
		{"accounts/Login", ""},
		{"enums", ""},
		{"projects/summaries/filter", ""},
		{"projectstates", ""},
		{"projectstates/degrade", ""},
		{"users/3/active", ""},
		{"users/3/password", ""},
	}
	for _, c := range cases {
		if got := ResolveEntity(c.path); got != c.want {
			t.Errorf("ResolveEntity(%q)=%q, want %q", c.path, got, c.want)
		}
	}
}

func TestShouldWrap(t *testing.T) {
	t.Parallel()
	body := map[string]any{"name": "X"}

	if !ShouldWrap("POST", "companies", body) {
		t.Fatalf("create on entity path must wrap")
	}
	if !ShouldWrap("PUT", "companies/42", body) {
		t.Fatalf("update on entity path must wrap")
	}
	if ShouldWrap("GET", "companies", body) {
		t.Fatalf("reads never wrap")
	}
	if ShouldWrap("DELETE", "companies/42", body) {
		t.Fatalf("deletes never wrap")
	}
	if ShouldWrap("POST", "projects/summaries/filter", body) {
		t.Fatalf("exempt path must not wrap")
	}
	if ShouldWrap("POST", "companies", nil) {
		t.Fatalf("nil body must not wrap")
	}
	already := map[string]any{"CompanyPostDTO": body}
	if ShouldWrap("POST", "companies", already) {
		t.Fatalf("already-enveloped body must not wrap again")
	}
}

func TestWrapCreate(t *testing.T) {
	t.Parallel()
	got := WrapCreate("Company", map[string]any{"name": "X", "alias": "x"})
	want := map[string]any{"CompanyPostDTO": map[string]any{"name": "X", "alias": "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWrapUpdate_IDFromBody(t *testing.T) {
	t.Parallel()
	got := WrapUpdate("Plan", "plans/99", map[string]any{"id": float64(7), "name": "P"})
	if got["id"] != int64(7) {
		t.Fatalf("outer id=%v, want 7 (body id wins over path)", got["id"])
	}
	inner := got["PlanPutDTO"].(map[string]any)
	if inner["id"] != int64(7) || inner["name"] != "P" {
		t.Fatalf("inner=%v", inner)
	}
}

func TestWrapUpdate_IDFromPath(t *testing.T) {
	t.Parallel()
	got := WrapUpdate("Company", "companies/42", map[string]any{"name": "X"})
	if got["id"] != int64(42) {
		t.Fatalf("outer id=%v, want 42", got["id"])
	}
	inner := got["CompanyPutDTO"].(map[string]any)
	if inner["id"] != int64(42) {
		t.Fatalf("inner id=%v, want 42", inner["id"])
	}
	// original body must not be mutated
	if _, ok := map[string]any{"name": "X"}["id"]; ok {
		t.Fatalf("source body mutated")
	}
}

func TestToObject(t *testing.T) {
	t.Parallel()
	type dto struct {
		Name string `json:"name"`
	}
	m, ok := ToObject(dto{Name: "X"})
	if !ok || m["name"] != "X" {
		t.Fatalf("struct: got %v ok=%v", m, ok)
	}
	if _, ok := ToObject([]int{1, 2}); ok {
		t.Fatalf("array is not an object")
	}
	if _, ok := ToObject("str"); ok {
		t.Fatalf("scalar is not an object")
	}
	if _, ok := ToObject(nil); ok {
		t.Fatalf("nil is not an object")
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"list envelope", `{"getDTOs":[{"id":1}]}`, `[{"id":1}]`},
		{"item envelope", `{"getDTO":{"id":1}}`, `{"id":1}`},
		{"bare list", `[{"id":1}]`, `[{"id":1}]`},
		{"bare object", `{"id":1}`, `{"id":1}`},
		{"two fields", `{"getDTOs":[],"total":3}`, `{"getDTOs":[],"total":3}`},
		{"error shaped", `{"message":"boom"}`, `{"message":"boom"}`},
		{"not json", `oops`, `oops`},
		{"empty", ``, ``},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Unwrap(json.RawMessage(c.in))
			if string(got) != c.want {
				t.Fatalf("Unwrap(%s)=%s, want %s", c.in, got, c.want)
			}
		})
	}
}

func TestUnwrapIdempotent(t *testing.T) {
	t.Parallel()
	in := json.RawMessage(`{"getDTOs":[{"id":1},{"id":2}]}`)
	once := Unwrap(in)
	twice := Unwrap(once)
	if string(once) != string(twice) {
		t.Fatalf("not idempotent: %s vs %s", once, twice)
	}
}

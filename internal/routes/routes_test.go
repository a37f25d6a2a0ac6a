package routes

import "testing"

func TestURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		op   string
		args []any
		want string
	}{
		{"companies.list", nil, "companies"},
		{"companies.update", []any{int64(42)}, "companies/42"},
		{"projects.filter", nil, "projects/summaries/filter"},
		{"projectcompanies.byProject", []any{7}, "projectcompanies/project/7"},
		{"pdcstates.byPdc", []any{12}, "projectdetailcompanystates/project-Detail-Company/12"},
		{"users.toggleActive", []any{3}, "users/3/active"},
		{"projectfiles.download", []any{9}, "projectfiles/download/9"},
	}
	for _, c := range cases {
		got, err := URL(c.op, c.args...)
		if err != nil {
			t.Fatalf("URL(%s): %v", c.op, err)
		}
		if got != c.want {
			t.Errorf("URL(%s)=%q, want %q", c.op, got, c.want)
		}
	}
}

func TestURLErrors(t *testing.T) {
	t.Parallel()
	if _, err := URL("companies.fly"); err == nil {
		t.Fatalf("unknown op must error")
	}
	if _, err := URL("companies.update"); err == nil {
		t.Fatalf("missing arg must error")
	}
	if _, err := URL("companies.list", 1); err == nil {
		t.Fatalf("extra arg must error")
	}
}

func TestMustURLPanicsOnMiss(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustURL("no.such.op")
}

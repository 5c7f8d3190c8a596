package etag

import "testing"

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string
		Count int
	}

	a, err := Compute(payload{Name: "hawks", Count: 3})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b, err := Compute(payload{Name: "hawks", Count: 3})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if a != b {
		t.Fatalf("expected identical payloads to produce identical etags: %s != %s", a, b)
	}
}

func TestCompute_DiffersOnChange(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string
	}

	a, err := Compute(payload{Name: "hawks"})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	b, err := Compute(payload{Name: "celtics"})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if a == b {
		t.Fatalf("expected different payloads to produce different etags")
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tag, err := Compute(map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	cases := []struct {
		name        string
		ifNoneMatch string
		want        bool
	}{
		{"exact match", tag, true},
		{"wildcard", "*", true},
		{"mismatch", `"deadbeef"`, false},
		{"empty header", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Matches(tc.ifNoneMatch, tag); got != tc.want {
				t.Fatalf("Matches(%q, %q) = %v, want %v", tc.ifNoneMatch, tag, got, tc.want)
			}
		})
	}
}

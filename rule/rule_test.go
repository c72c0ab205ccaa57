package rule

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Fragment: "fragment",
		Keyword:  "keyword",
		Grouper:  "grouper",
		Replacer: "replacer",
		Producer: "producer",
		Kind(99): "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestPrivate(t *testing.T) {
	if (&Rule{Name: "_hidden"}).Private() != true {
		t.Error("_hidden should be private")
	}
	if (&Rule{Name: "visible"}).Private() != false {
		t.Error("visible should not be private")
	}
	if (&Rule{}).Private() != false {
		t.Error("empty name should not be private")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    *Rule
		wantErr bool
	}{
		{"unnamed", &Rule{Kind: Fragment, Body: "x"}, true},
		{"producer without action", NewProducer("p", "a b", 0, nil), true},
		{"producer with action", NewProducer("p", "a b", 0, func(Token) ([]any, bool) { return nil, true }), false},
		{"keyword no body no words", &Rule{Name: "k", Kind: Keyword}, true},
		{"keyword with words", NewKeywordWords("k", "a", "b"), false},
		{"fragment empty body", &Rule{Name: "f", Kind: Fragment}, true},
		{"fragment ok", NewFragment("f", "[0-9]+"), false},
		{"grouper empty pattern", &Rule{Name: "g", Kind: Grouper}, true},
		{"grouper ok", NewGrouper("g", "a b", 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	f := NewFragment("num", "[0-9]+", "value")
	if f.Kind != Fragment || f.Body != "[0-9]+" || len(f.Groups) != 1 {
		t.Errorf("NewFragment produced unexpected rule: %+v", f)
	}

	kr := NewKeywordRegex("unit", "mm|cm", "unit")
	if kr.Kind != Keyword || kr.Body != "mm|cm" {
		t.Errorf("NewKeywordRegex produced unexpected rule: %+v", kr)
	}

	kw := NewKeywordWords("sex_male", "male", "m")
	if kw.Kind != Keyword || len(kw.Words) != 2 {
		t.Errorf("NewKeywordWords produced unexpected rule: %+v", kw)
	}

	g := NewGrouper("g", "a b", 5)
	if g.Kind != Grouper || g.Priority != 5 {
		t.Errorf("NewGrouper produced unexpected rule: %+v", g)
	}

	r := NewReplacer("r", "a b", 1)
	if r.Kind != Replacer || r.Priority != 1 {
		t.Errorf("NewReplacer produced unexpected rule: %+v", r)
	}

	p := NewProducer("p", "a b", 2, func(Token) ([]any, bool) { return nil, true })
	if p.Kind != Producer || p.Action == nil {
		t.Errorf("NewProducer produced unexpected rule: %+v", p)
	}
}

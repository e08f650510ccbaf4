package directive

import "testing"

func TestParse_Directives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		kind  Kind
		value string
	}{
		{"# ^package Foo::Bar", KindPackage, "Foo::Bar"},
		{"## ^package Foo", KindPackage, "Foo"},
		{"   #  ^  package Foo", KindPlain, ""}, // whitespace between caret and keyword is not allowed
		{"#^function foo", KindFunction, "foo"},
		{"# ^function foo   ", KindFunction, "foo"},
		{"# ^uses @hello", KindUses, "@hello"},
		{"# ^variable my @hello", KindVariable, "my @hello"},
		{"# ^frobnicate x", KindUnknown, "x"},
		{"# ^package", KindPlain, ""}, // keyword without value
		{"# plain comment", KindPlain, ""},
		{"my $x = 1;", KindPlain, ""},
		{"", KindPlain, ""},
	}

	for _, tt := range tests {
		d := Parse(tt.line)
		if d.Kind != tt.kind {
			t.Errorf("Parse(%q).Kind = %v, want %v", tt.line, d.Kind, tt.kind)
		}
		if d.Kind != KindPlain && d.Value != tt.value {
			t.Errorf("Parse(%q).Value = %q, want %q", tt.line, d.Value, tt.value)
		}
	}
}

func TestParse_VariableScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		scope VarScope
		name  string
	}{
		{"# ^variable my @hello", ScopeLexical, "@hello"},
		{"# ^variable our @test2", ScopePackage, "@test2"},
		{"# ^variable @bare", ScopeUnspecified, "@bare"},
		{"# ^variable local @x", ScopeInvalid, "local @x"},
		{"# ^variable my our @x", ScopeInvalid, "my our @x"},
	}

	for _, tt := range tests {
		d := Parse(tt.value)
		if d.Kind != KindVariable {
			t.Fatalf("Parse(%q).Kind = %v, want variable", tt.value, d.Kind)
		}
		if d.Scope != tt.scope {
			t.Errorf("Parse(%q).Scope = %v, want %v", tt.value, d.Scope, tt.scope)
		}
		if d.Name != tt.name {
			t.Errorf("Parse(%q).Name = %q, want %q", tt.value, d.Name, tt.name)
		}
	}
}

func TestSigilOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sigil byte
	}{
		{"$scalar", '$'},
		{"@array", '@'},
		{"%hash", '%'},
		{"&func", '&'},
		{"*glob", '*'},
		{"bare", 0},
		{"path/to/file.pl", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := SigilOf(tt.name); got != tt.sigil {
			t.Errorf("SigilOf(%q) = %q, want %q", tt.name, got, tt.sigil)
		}
	}
}

func TestEnsureCodeSigil(t *testing.T) {
	t.Parallel()

	if got := EnsureCodeSigil("foo"); got != "&foo" {
		t.Errorf("EnsureCodeSigil(foo) = %q, want &foo", got)
	}
	if got := EnsureCodeSigil("&foo"); got != "&foo" {
		t.Errorf("EnsureCodeSigil(&foo) = %q, want &foo", got)
	}
	if got := EnsureCodeSigil("@arr"); got != "@arr" {
		t.Errorf("EnsureCodeSigil(@arr) = %q, want @arr", got)
	}
}

func TestQualify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		namespace string
		want      string
	}{
		{"@hello", "main", "@main::hello"},
		{"&foo", "Foo::Bar", "&Foo::Bar::foo"},
		{"$x", "main", "$main::x"},
		{"@Foo::hello", "main", "@Foo::hello"}, // already qualified
		{"file.pl", "main", "file.pl"},         // bare names never qualified
	}
	for _, tt := range tests {
		if got := Qualify(tt.name, tt.namespace); got != tt.want {
			t.Errorf("Qualify(%q, %q) = %q, want %q", tt.name, tt.namespace, got, tt.want)
		}
	}
}

func TestQualify_Idempotent(t *testing.T) {
	t.Parallel()

	once := Qualify("@hello", "main")
	twice := Qualify(once, "Other")
	if once != twice {
		t.Errorf("Qualify not idempotent: %q != %q", once, twice)
	}
}

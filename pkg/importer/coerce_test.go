package importer

import (
	"reflect"
	"testing"
)

func TestCoerceOption(t *testing.T) {
	d := &Descriptor{
		ID:   "customfield_10001",
		Name: "Plataforma",
		Type: "option",
		Allowed: []Option{
			{ID: "100", Label: "Web"},
			{ID: "101", Label: "Web Mobile"},
		},
	}

	tests := []struct {
		name     string
		raw      string
		expected interface{}
	}{
		{"exact match modulo case", "web", map[string]interface{}{"id": "100"}},
		{"longer label exact", "Web Mobile", map[string]interface{}{"id": "101"}},
		{"unmatched falls back to by-name reference", "Desktop", map[string]interface{}{"value": "Desktop"}},
		{"blank omits the field", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(d, tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Coerce(%q) = %#v, want %#v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCoercePriorityFallback(t *testing.T) {
	d := &Descriptor{
		ID:   "priority",
		Type: "priority",
		Allowed: []Option{
			{ID: "1", Label: "Highest"},
			{ID: "3", Label: "Medium"},
			{ID: "5", Label: "Low"},
		},
	}

	// No fuzzy match for "Alta": submitted as a reference by name.
	got := Coerce(d, "Alta")
	expected := map[string]interface{}{"name": "Alta"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Coerce(\"Alta\") = %#v, want %#v", got, expected)
	}

	got = Coerce(d, "medium")
	expected = map[string]interface{}{"id": "3"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Coerce(\"medium\") = %#v, want %#v", got, expected)
	}
}

func TestCoerceLabelsArray(t *testing.T) {
	d := &Descriptor{ID: "labels", Type: "array", Items: "labels"}

	got := Coerce(d, "a, b , c")
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Coerce(\"a, b , c\") = %#v, want %#v", got, expected)
	}

	// Trailing commas produce no empty entries.
	got = Coerce(d, "x,,y,")
	expected = []string{"x", "y"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Coerce(\"x,,y,\") = %#v, want %#v", got, expected)
	}
}

func TestCoerceOptionArray(t *testing.T) {
	d := &Descriptor{
		ID:    "customfield_10002",
		Type:  "array",
		Items: "option",
		Allowed: []Option{
			{ID: "200", Label: "Backend"},
			{ID: "201", Label: "Frontend"},
		},
	}

	got := Coerce(d, "Backend, Mobile")
	expected := []interface{}{
		map[string]interface{}{"id": "200"},
		map[string]interface{}{"value": "Mobile"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Coerce(\"Backend, Mobile\") = %#v, want %#v", got, expected)
	}
}

func TestCoerceUserArray(t *testing.T) {
	d := &Descriptor{ID: "customfield_10003", Type: "array", Items: "user"}

	got, ok := Coerce(d, "Ana López, jcroquer").([]interface{})
	if !ok {
		t.Fatalf("expected []interface{}, got %T", Coerce(d, "Ana López, jcroquer"))
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(got))
	}
	first, ok := got[0].(*UserRef)
	if !ok || first.Query != "Ana López" || first.AccountID != "" {
		t.Errorf("unexpected first ref: %#v", got[0])
	}
}

func TestCoerceDate(t *testing.T) {
	d := &Descriptor{ID: "duedate", Type: "date"}

	tests := []struct {
		raw      string
		expected string
	}{
		{"05/03/2024", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{"not-a-date", "not-a-date"},
		{"31/02/2024", "31/02/2024"}, // impossible date passes through
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Coerce(d, tt.raw); got != tt.expected {
				t.Errorf("Coerce(%q) = %v, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCoerceTeam(t *testing.T) {
	d := &Descriptor{
		ID:   "customfield_10004",
		Type: "team",
		Allowed: []Option{
			{ID: "team-1", Label: "Equipo Azul"},
		},
	}

	tests := []struct {
		name     string
		raw      string
		expected interface{}
	}{
		{"known team by name", "Equipo Azul", "team-1"},
		{"bare UUID passes through", "f47ac10b-58cc-4372-a567-0e02b2c3d479", "f47ac10b-58cc-4372-a567-0e02b2c3d479"},
		{"free text last resort", "Equipo Verde", "Equipo Verde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(d, tt.raw); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Coerce(%q) = %#v, want %#v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCoercePassthrough(t *testing.T) {
	for _, typ := range []string{"string", "text", "url", "any"} {
		d := &Descriptor{ID: "f", Type: typ}
		if got := Coerce(d, "value"); got != "value" {
			t.Errorf("Coerce(%q field) = %v, want \"value\"", typ, got)
		}
	}
}

func TestIsUUID(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"f47ac10b-58cc-4372-a567-0e02b2c3d479", true},
		{"F47AC10B-58CC-4372-A567-0E02B2C3D479", true},
		{"f47ac10b58cc4372a5670e02b2c3d479", false}, // undashed form is not accepted
		{"not-a-uuid", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsUUID(tt.in); got != tt.expected {
			t.Errorf("IsUUID(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestStructurallyValid(t *testing.T) {
	userField := &Descriptor{ID: "u", Type: "user"}
	teamField := &Descriptor{ID: "t", Type: "team", Allowed: []Option{{ID: "team-1", Label: "Azul"}}}
	userArray := &Descriptor{ID: "ua", Type: "array", Items: "user"}

	tests := []struct {
		name     string
		desc     *Descriptor
		value    interface{}
		expected bool
	}{
		{"unresolved user ref", userField, &UserRef{Query: "Ana"}, false},
		{"resolved user ref", userField, &UserRef{Query: "Ana", AccountID: "acc-1"}, true},
		{"team by known id", teamField, "team-1", true},
		{"team by UUID", teamField, "f47ac10b-58cc-4372-a567-0e02b2c3d479", true},
		{"team free text", teamField, "Equipo Verde", false},
		{"user array with unresolved member", userArray, []interface{}{&UserRef{Query: "a", AccountID: "x"}, &UserRef{Query: "b"}}, false},
		{"user array fully resolved", userArray, []interface{}{&UserRef{Query: "a", AccountID: "x"}}, true},
		{"plain string always valid", &Descriptor{ID: "s", Type: "string"}, "anything", true},
		{"nil never valid", &Descriptor{ID: "s", Type: "string"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StructurallyValid(tt.desc, tt.value); got != tt.expected {
				t.Errorf("StructurallyValid = %v, want %v", got, tt.expected)
			}
		})
	}
}

package annotations

import (
	"reflect"
	"testing"
)

func TestAnnotationTypeRoundTrip(t *testing.T) {
	types := []AnnotationType{
		RouteAnnotation, ContextAnnotation, ControllerAnnotation,
		ViewAnnotation, RoutableAnnotation, CommandAnnotation,
	}

	for _, annotationType := range types {
		parsed, err := ParseAnnotationType(annotationType.String())
		if err != nil {
			t.Fatalf("ParseAnnotationType(%q) failed: %v", annotationType.String(), err)
		}
		if parsed != annotationType {
			t.Errorf("round trip %v -> %q -> %v", annotationType, annotationType.String(), parsed)
		}
	}

	if _, err := ParseAnnotationType("widget"); err == nil {
		t.Error("ParseAnnotationType(\"widget\") succeeded, want error")
	}
}

func TestParsedAnnotationAccessors(t *testing.T) {
	annotation := &ParsedAnnotation{
		Type: RouteAnnotation,
		Parameters: map[string]interface{}{
			"pattern": "/users",
			"methods": []string{"GET", "POST"},
			"Error":   true,
		},
	}

	if got := annotation.GetString("pattern"); got != "/users" {
		t.Errorf("GetString(pattern) = %q, want /users", got)
	}
	if got := annotation.GetString("missing", "fallback"); got != "fallback" {
		t.Errorf("GetString default = %q, want fallback", got)
	}
	if !annotation.GetBool("Error") {
		t.Error("GetBool(Error) = false, want true")
	}
	if annotation.GetBool("missing") {
		t.Error("GetBool(missing) = true, want false")
	}
	if got := annotation.GetStringSlice("methods"); !reflect.DeepEqual(got, []string{"GET", "POST"}) {
		t.Errorf("GetStringSlice(methods) = %v", got)
	}
	if !annotation.HasParameter("pattern") || annotation.HasParameter("missing") {
		t.Error("HasParameter gave wrong answers")
	}
}

func TestConvertToBool(t *testing.T) {
	tests := []struct {
		input   interface{}
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"true", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"on", true, false},
		{"false", false, false},
		{"0", false, false},
		{"no", false, false},
		{"off", false, false},
		{"maybe", false, true},
		{42, false, true},
	}

	for _, tt := range tests {
		got, err := ConvertToBool(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ConvertToBool(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ConvertToBool(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConvertToStringSlice(t *testing.T) {
	tests := []struct {
		input   interface{}
		want    []string
		wantErr bool
	}{
		{[]string{"a", "b"}, []string{"a", "b"}, false},
		{"GET", []string{"GET"}, false},
		{"GET,POST", []string{"GET", "POST"}, false},
		{"GET, POST , PUT", []string{"GET", "POST", "PUT"}, false},
		{"", []string{}, false},
		{42, nil, true},
	}

	for _, tt := range tests {
		got, err := ConvertToStringSlice(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ConvertToStringSlice(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ConvertToStringSlice(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

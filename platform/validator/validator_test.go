package validator

import "testing"

type regionRequest struct {
	Region string `validate:"phoneregion"`
}

type contactRequest struct {
	Type  string `validate:"required,contactkind"`
	Value string `validate:"max=255"`
}

func TestPhoneRegionTag(t *testing.T) {
	val := New()

	for _, region := range []string{"", "ES", "fr"} {
		if err := val.Struct(regionRequest{Region: region}); err != nil {
			t.Fatalf("expected region %q to pass, got %v", region, err)
		}
	}
	if err := val.Struct(regionRequest{Region: "XX"}); err == nil {
		t.Fatal("expected unknown region to fail")
	}
}

func TestContactKindTag(t *testing.T) {
	val := New()

	if err := val.Struct(contactRequest{Type: "mobile"}); err != nil {
		t.Fatalf("expected mobile to pass, got %v", err)
	}
	if err := val.Struct(contactRequest{Type: "pager"}); err == nil {
		t.Fatal("expected unknown kind to fail")
	}
}

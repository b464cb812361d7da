package validation

import (
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"email ok", IsEmail("ana@example.com"), true},
		{"email spaces trimmed", IsEmail("  ana@example.com "), true},
		{"email missing domain", IsEmail("ana@"), false},
		{"email missing at", IsEmail("ana.example.com"), false},
		{"phone 10 digits", IsPhone("5512345678"), true},
		{"phone formatted", IsPhone("55 1234-5678"), true},
		{"phone short", IsPhone("12345"), false},
		{"password strong", IsStrongPassword("Secret123"), true},
		{"password no upper", IsStrongPassword("secret123"), false},
		{"password no digit", IsStrongPassword("SecretSecret"), false},
		{"password short", IsStrongPassword("Se1"), false},
		{"comments limit", Comments(strings.Repeat("a", MaxCommentsLen)), true},
		{"comments over", Comments(strings.Repeat("a", MaxCommentsLen+1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestFormatters(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("NormalizeEmail: %q", got)
	}
	if got := DigitsOnly("(55) 1234-5678"); got != "5512345678" {
		t.Fatalf("DigitsOnly: %q", got)
	}
	if got := FormatPhone("5512345678"); got != "55 1234 5678" {
		t.Fatalf("FormatPhone: %q", got)
	}
	if got := FormatPhone("123"); got != "123" {
		t.Fatalf("FormatPhone short should pass through: %q", got)
	}
}

func TestPetFields(t *testing.T) {
	if _, ok := PetName(strings.Repeat("ñ", MaxPetNameLen)); !ok {
		t.Fatalf("25 runes must be accepted")
	}
	if _, ok := PetName(strings.Repeat("a", MaxPetNameLen+1)); ok {
		t.Fatalf("26 chars must be rejected")
	}
	if _, ok := PetName("   "); ok {
		t.Fatalf("blank name must be rejected")
	}

	for _, in := range []string{"0", "20", " 7 "} {
		if _, ok := ParseAge(in); !ok {
			t.Fatalf("age %q should be valid", in)
		}
	}
	for _, in := range []string{"-1", "21", "dos", ""} {
		if _, ok := ParseAge(in); ok {
			t.Fatalf("age %q should be invalid", in)
		}
	}

	if z, ok := Zone(" Norte "); !ok || z != "norte" {
		t.Fatalf("expected norte, got %q %v", z, ok)
	}
	if _, ok := Zone("este"); ok {
		t.Fatalf("unknown zone should be invalid")
	}
}

func TestForms(t *testing.T) {
	if fe := Login("ana@example.com", "x"); !fe.OK() {
		t.Fatalf("expected valid login, got %v", fe)
	}
	fe := Login("bad", "")
	if fe["email"] != MsgEmail || fe["password"] != MsgRequired {
		t.Fatalf("unexpected login errors: %v", fe)
	}

	fe = Register(RegisterForm{
		Name:            "Ana",
		Email:           "ana@example.com",
		Phone:           "551234",
		Password:        "Secret123",
		ConfirmPassword: "Secret124",
	})
	if fe["phone"] != MsgPhone || fe["confirm_password"] != MsgPasswordMatch {
		t.Fatalf("unexpected register errors: %v", fe)
	}
	if _, ok := fe["name"]; ok {
		t.Fatalf("name should be valid")
	}

	fe = ResetPassword("ana@example.com", "", "Secret123", "Secret123")
	if len(fe) != 1 || fe["code"] != MsgCode {
		t.Fatalf("unexpected reset errors: %v", fe)
	}

	fe = ProfileStep("Max", "25")
	if len(fe) != 1 || fe["age"] != MsgAge {
		t.Fatalf("unexpected profile errors: %v", fe)
	}
	if ZoneStep("centro").Err() != nil {
		t.Fatalf("centro should be valid")
	}
	if BreedStep("").Err() == nil {
		t.Fatalf("empty breed should fail")
	}
	if DetailsStep("", strings.Repeat("x", 300), "").Err() == nil {
		t.Fatalf("long comments should fail")
	}
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"zone": "z", "age": "a"}
	if got := fe.Error(); got != "age: a; zone: z" {
		t.Fatalf("unexpected error string %q", got)
	}
}

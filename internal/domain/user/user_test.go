package user

import "testing"

func TestValidateEmail(t *testing.T) {
	ok := []string{"alice@example.com", "a.b+c@mail.co", "x@y.io"}
	for _, v := range ok {
		if err := ValidateEmail(v); err != nil {
			t.Fatalf("expected valid email %q: %v", v, err)
		}
	}
	bad := []string{"", "alice", "alice@", "@example.com", "a b@example.com", "alice@example"}
	for _, v := range bad {
		if err := ValidateEmail(v); err == nil {
			t.Fatalf("expected invalid email %q", v)
		}
	}
}

func TestRegistration_Validate(t *testing.T) {
	base := Registration{
		Name:            Name{FirstName: "Alice", LastName: "Smith"},
		Email:           " Alice@Example.com ",
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid registration: %v", err)
	}

	mismatch := base
	mismatch.ConfirmPassword = "other-pass"
	if err := mismatch.Validate(); err == nil {
		t.Fatalf("expected error for mismatched passwords")
	}

	short := base
	short.Password, short.ConfirmPassword = "short", "short"
	if err := short.Validate(); err == nil {
		t.Fatalf("expected error for short password")
	}

	noName := base
	noName.Name.LastName = " "
	if err := noName.Validate(); err == nil {
		t.Fatalf("expected error for missing last name")
	}
}

func TestCredentials_Validate(t *testing.T) {
	if err := (Credentials{Email: "a@b.co", Password: "x"}).Validate(); err != nil {
		t.Fatalf("expected valid credentials: %v", err)
	}
	if err := (Credentials{Email: "a@b.co"}).Validate(); err == nil {
		t.Fatalf("expected error for missing password")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "secret-pass") {
		t.Fatalf("expected password to verify")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatalf("expected wrong password to fail")
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestName_Display(t *testing.T) {
	middle := "Q"
	if got := (Name{FirstName: "Bob", LastName: "Jones", MiddleName: &middle}).Display(); got != "Bob Q Jones" {
		t.Fatalf("unexpected display %q", got)
	}
	if got := (Name{FirstName: "Bob"}).Display(); got != "Bob" {
		t.Fatalf("unexpected display %q", got)
	}
}

package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b@c.d"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "no-at-sign.com", "no-dot@domain", "@", "plainstring"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"bob", "alice_92", "posture-fan", "Ab3"}
	for _, name := range valid {
		if !IsValidUsername(name) {
			t.Errorf("IsValidUsername(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "ab", "has space", "semi;colon", "<script>"}
	for _, name := range invalid {
		if IsValidUsername(name) {
			t.Errorf("IsValidUsername(%q) = true, want false", name)
		}
	}

	long := make([]byte, 81)
	for i := range long {
		long[i] = 'a'
	}
	if IsValidUsername(string(long)) {
		t.Error("IsValidUsername accepted an 81-char name")
	}
}

func TestIsComplexPassword(t *testing.T) {
	valid := []string{"Passw0rd!", "aB3$efgh"}
	for _, pw := range valid {
		if !IsComplexPassword(pw) {
			t.Errorf("IsComplexPassword(%q) = false, want true", pw)
		}
	}

	invalid := []string{
		"alllower1!",
		"ALLUPPER1!",
		"NoNumbers!",
		"NoSpecial1",
		"Sh0rt!a", // all classes but under 8 chars
	}
	for _, pw := range invalid {
		if IsComplexPassword(pw) {
			t.Errorf("IsComplexPassword(%q) = true, want false", pw)
		}
	}
}

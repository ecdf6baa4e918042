package crypto_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"eightyseven/internal/crypto"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	sealed, err := crypto.Seal("correct horse", []byte("hunter2"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !crypto.IsSealed(sealed) {
		t.Fatal("IsSealed rejected Seal output")
	}

	got, err := crypto.Open("correct horse", sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(got) != "hunter2" {
		t.Fatalf("want hunter2, got %q", got)
	}
}

func TestSeal_FreshSaltEachTime(t *testing.T) {
	a, err := crypto.Seal("pass", []byte("same"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	b, err := crypto.Seal("pass", []byte("same"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if a == b {
		t.Fatal("two seals of the same secret are identical")
	}
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealed, err := crypto.Seal("right", []byte("hunter2"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := crypto.Open("wrong", sealed); !errors.Is(err, crypto.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestOpen_NotSealed(t *testing.T) {
	for _, s := range []string{"", "hunter2", base64.StdEncoding.EncodeToString([]byte(`{"v":1}`))} {
		if crypto.IsSealed(s) {
			t.Fatalf("IsSealed(%q) = true", s)
		}
		if _, err := crypto.Open("pass", s); !errors.Is(err, crypto.ErrNotSealed) {
			t.Fatalf("Open(%q): want ErrNotSealed, got %v", s, err)
		}
	}
}

func TestSeal_RequiresPassphrase(t *testing.T) {
	if _, err := crypto.Seal("", []byte("x")); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}

func TestOpen_RejectsCostlyParameters(t *testing.T) {
	sealed, err := crypto.Seal("pass", []byte("hunter2"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	cases := map[string]int{
		"scrypt_N": 1 << 30,
		"scrypt_r": 1 << 10,
		"scrypt_p": 1000,
	}
	for field, value := range cases {
		var env map[string]any
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		env[field] = value
		b, err := json.Marshal(env)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		tampered := base64.StdEncoding.EncodeToString(b)

		if crypto.IsSealed(tampered) {
			t.Fatalf("%s=%d: IsSealed = true", field, value)
		}
		if _, err := crypto.Open("pass", tampered); !errors.Is(err, crypto.ErrNotSealed) {
			t.Fatalf("%s=%d: want ErrNotSealed, got %v", field, value, err)
		}
	}
}

func TestWipe(t *testing.T) {
	b := []byte("hunter2")
	crypto.Wipe(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d not wiped: %d", i, c)
		}
	}
	crypto.Wipe(nil)
}

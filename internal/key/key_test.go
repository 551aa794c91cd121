package key

import (
	"regexp"
	"testing"
)

func TestNewGeneratedKey(t *testing.T) {
	k, err := NewGeneratedKey(SizeAES256)
	if err != nil {
		t.Fatal("NewGeneratedKey returned error on first call")
	}

	if err := k.Generate(SizeAES256); err != ErrorKeyAlreadyGenerated {
		t.Fatalf("Generate returned error %s, expected %s", err, ErrorKeyAlreadyGenerated)
	}

	bytesKey := k.Get()

	if len(bytesKey) != SizeAES256 {
		t.Fatalf("Expected k.Get() to return a %d length byte slice, got %d", SizeAES256, len(bytesKey))
	}

	hexStr := k.String()
	isHex, err := regexp.MatchString(`^[0-9a-f]{64}$`, hexStr)

	if err != nil {
		t.Error(err)
	}

	if !isHex {
		t.Fatalf("expected %s to match hex string regexp", hexStr)
	}
}

func TestNewGeneratedKeyDualLayer(t *testing.T) {
	k, err := NewGeneratedKey(SizeAES512)
	if err != nil {
		t.Fatal("NewGeneratedKey returned error")
	}

	if len(k.Get()) != SizeAES512 {
		t.Fatalf("Expected a %d byte key, got %d", SizeAES512, len(k.Get()))
	}

	if len(k.String()) != SizeAES512*2 {
		t.Fatalf("Expected a %d character hex string, got %d", SizeAES512*2, len(k.String()))
	}
}

func TestFromHex(t *testing.T) {
	k, err := NewGeneratedKey(SizeAES256)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := FromHex(k.String())
	if err != nil {
		t.Fatal(err)
	}

	if decoded.String() != k.String() {
		t.Fatalf("expected %s, got %s", k.String(), decoded.String())
	}
}

func TestFromHexInvalid(t *testing.T) {
	if _, err := FromHex("not a hex string"); err == nil {
		t.Fatal("expected error for invalid hex input")
	}
}

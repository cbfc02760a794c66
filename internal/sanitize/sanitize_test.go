package sanitize

import (
	"bytes"
	"testing"
)

func TestBytes_RemovesControlCodes(t *testing.T) {
	in := []byte("\x00\x01\x02\x03\x04\x05\x06\x07\x08\x0b\x0c\x0e\x0f\x10\x11" +
		"\x12\x13\x14\x15\x16\x17\x18\x19h\x1ae\x1bl\x1cl\x1do\x1e\x1f")
	got := Bytes(in)
	if string(got) != "hello" {
		t.Fatalf("Bytes = %q, want %q", got, "hello")
	}
}

func TestBytes_KeepsWhitespace(t *testing.T) {
	in := []byte("a\tb\nc\rd")
	if got := Bytes(in); !bytes.Equal(got, in) {
		t.Fatalf("Bytes = %q, want %q", got, in)
	}
}

func TestBytes_PreservesOrderAndOtherBytes(t *testing.T) {
	var in, want []byte
	for i := 0; i < 256; i++ {
		in = append(in, byte(i), 'x')
		if !IsIllegal(byte(i)) {
			want = append(want, byte(i))
		}
		want = append(want, 'x')
	}

	got := Bytes(in)
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes mismatch:\ngot:  %q\nwant: %q", got, want)
	}
	for _, b := range got {
		if IsIllegal(b) {
			t.Fatalf("illegal byte 0x%02x left in output", b)
		}
	}
}

func TestBytes_Idempotent(t *testing.T) {
	in := []byte("<add>\x07<doc>\x1bok</doc></add>")
	once := Bytes(in)
	twice := Bytes(once)
	if !bytes.Equal(once, twice) {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}

func TestBytes_DoesNotModifyInput(t *testing.T) {
	in := []byte("a\x00b")
	_ = Bytes(in)
	if string(in) != "a\x00b" {
		t.Fatalf("input modified: %q", in)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"clean", "clean"},
		{"snow\x0c☃man", "snow☃man"},
		{"\x1f", ""},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	if Contains("line\nbreak\ttab\r") {
		t.Error("whitespace must not count as illegal")
	}
	if !Contains("bell\x07") {
		t.Error("expected BEL to be illegal")
	}
}

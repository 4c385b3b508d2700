package tagcache

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIoErrorUnwrapsToCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := &IoError{Path: "/db/x", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through IoError to its cause")
	}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestMagicMismatchMessageIncludesBothValues(t *testing.T) {
	err := &MagicMismatch{Path: "/db/database_idx.tcd", Expected: Magic, Got: 0}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected a non-empty error message")
	}
	if !strings.Contains(msg, "0x54434810") || !strings.Contains(msg, "0x00000000") {
		t.Errorf("expected both expected and got magic values in %q", msg)
	}
}

func TestMissingSiblingIdentifiesKind(t *testing.T) {
	err := &MissingSibling{Kind: Artist, ExpectedPath: "/db/database_7.tcd"}
	var target *MissingSibling
	if !errors.As(error(err), &target) {
		t.Fatal("expected errors.As to recover the concrete type")
	}
	if target.Kind != Artist {
		t.Errorf("got kind %v, want %v", target.Kind, Artist)
	}
}

func TestYamlParseErrorUnwrapsToCause(t *testing.T) {
	cause := fmt.Errorf("bad indent")
	err := &YamlParseError{Path: "genres.yaml", Line: 7, Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through YamlParseError to its cause")
	}
}

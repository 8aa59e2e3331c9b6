package extract

import (
	"testing"

	"github.com/qasikfwn/limn/internal/extext"
)

func TestDispatchKnownExtensions(t *testing.T) {
	if _, ok := Dispatch(extext.LuaHash, false).(ScriptParser); !ok {
		t.Fatalf("expected ScriptParser for lua extension")
	}
	if _, ok := Dispatch(extext.StringsHash, false).(StringTableParser); !ok {
		t.Fatalf("expected StringTableParser for strings extension")
	}
	if _, ok := Dispatch(packageExtHash, false).(PackageParser); !ok {
		t.Fatalf("expected PackageParser for package extension")
	}
	if _, ok := Dispatch(0xdeadbeef, false).(RawParser); !ok {
		t.Fatalf("expected RawParser fallback for unknown extension")
	}
}

func TestDispatchRawOnlyForcesRaw(t *testing.T) {
	if _, ok := Dispatch(extext.LuaHash, true).(RawParser); !ok {
		t.Fatalf("expected RawParser when rawOnly is set")
	}
}

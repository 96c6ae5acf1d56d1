package packet

import (
	"testing"

	"go.uber.org/zap"
)

func TestWriterReaderFields(t *testing.T) {
	w := NewWriter(C_OPCODE_WALK)
	w.WriteC(1)
	w.WriteH(3205)
	w.WriteD(-42)
	w.WriteS("walker")

	r := NewReader(w.Bytes())
	if r.Opcode() != C_OPCODE_WALK {
		t.Fatalf("opcode = %d", r.Opcode())
	}
	if v := r.ReadC(); v != 1 {
		t.Fatalf("ReadC = %d", v)
	}
	if v := r.ReadH(); v != 3205 {
		t.Fatalf("ReadH = %d", v)
	}
	if v := r.ReadD(); v != -42 {
		t.Fatalf("ReadD = %d", v)
	}
	if v := r.ReadS(); v != "walker" {
		t.Fatalf("ReadS = %q", v)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d", r.Remaining())
	}
	if r.ReadH() != 0 || r.ReadC() != 0 {
		t.Fatal("reads past the end must return zero")
	}
}

func TestCharsetRoundTrip(t *testing.T) {
	if err := SetCharset("big5"); err != nil {
		t.Fatal(err)
	}
	defer SetCharset("utf-8")

	w := NewWriter(S_OPCODE_MESSAGE)
	w.WriteS("天堂")
	if w.Len() != 1+4+1 {
		t.Fatalf("big5 encoded length = %d, want 6", w.Len())
	}
	if got := NewReader(w.Bytes()).ReadS(); got != "天堂" {
		t.Fatalf("ReadS = %q", got)
	}

	if err := SetCharset("no-such-charset"); err == nil {
		t.Fatal("expected error for unknown charset")
	}
}

func TestRegistryChecksState(t *testing.T) {
	reg := NewRegistry[string](zap.NewNop())
	calls := 0
	reg.Register(C_OPCODE_WALK, []SessionState{StateInWorld}, func(sess string, r *Reader) {
		calls++
	})
	reg.Register(C_OPCODE_LOGOUT, []SessionState{StateInWorld}, func(sess string, r *Reader) {
		panic("bad handler")
	})

	if err := reg.Dispatch("s1", StateConnected, []byte{C_OPCODE_WALK}); err == nil {
		t.Fatal("expected state violation error")
	}
	if err := reg.Dispatch("s1", StateInWorld, []byte{C_OPCODE_WALK}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if err := reg.Dispatch("s1", StateInWorld, []byte{99}); err != nil {
		t.Fatalf("unknown opcode should be ignored: %v", err)
	}
	if err := reg.Dispatch("s1", StateInWorld, []byte{C_OPCODE_LOGOUT}); err == nil {
		t.Fatal("expected recovered panic to surface as error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}

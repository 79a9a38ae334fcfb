package sayvm

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/say2/saylang"
	"github.com/reusee/say2/saytape"
)

func src(ops ...saylang.Op) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, "\n")
}

func concat(groups ...[]saylang.Op) []saylang.Op {
	return slices.Concat(groups...)
}

func times(op saylang.Op, n int) []saylang.Op {
	return slices.Repeat([]saylang.Op{op}, n)
}

func newTestVM(content string, input string) (*VM, *bytes.Buffer) {
	out := new(bytes.Buffer)
	vm := New(
		WithSource("test", content),
		WithInput(strings.NewReader(input)),
		WithOutput(out),
	)
	return vm, out
}

var printA = concat(
	times(saylang.OpIncrement, 5),
	[]saylang.Op{
		saylang.OpLoopStart,
		saylang.OpForward,
	},
	times(saylang.OpIncrement, 13),
	[]saylang.Op{
		saylang.OpBackward,
		saylang.OpDecrement,
		saylang.OpLoopEnd,
		saylang.OpForward,
		saylang.OpWrite,
	},
)

func TestForwardIncrement(t *testing.T) {
	vm, _ := newTestVM(src(saylang.OpForward, saylang.OpIncrement), "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	tape := vm.Tape()
	if tape.Cursor() != 1 {
		t.Fatalf("got %v", tape.Cursor())
	}
	if cells := tape.Cells(); !bytes.Equal(cells, []byte{0, 1}) {
		t.Fatalf("got %v", cells)
	}
	if vm.Executed() != 2 {
		t.Fatalf("got %v", vm.Executed())
	}
	if len(vm.Loops()) != 0 {
		t.Fatalf("got %v", vm.Loops())
	}
}

func TestLoop(t *testing.T) {
	vm, out := newTestVM(src(printA...), "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "A" {
		t.Fatalf("got %q", out.String())
	}
	if cells := vm.Tape().Cells(); !bytes.Equal(cells, []byte{0, 65}) {
		t.Fatalf("got %v", cells)
	}
	if len(vm.Loops()) != 0 {
		t.Fatalf("got %v", vm.Loops())
	}
	if vm.PC() != len(printA) {
		t.Fatalf("got %v", vm.PC())
	}
}

func TestLoopEndJumpsToBody(t *testing.T) {
	program := concat(
		times(saylang.OpIncrement, 2),
		[]saylang.Op{
			saylang.OpLoopStart, // 2
			saylang.OpDecrement, // 3
			saylang.OpLoopEnd,   // 4
		},
	)
	vm, _ := newTestVM(src(program...), "")
	if err := vm.Reset(); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := vm.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if loops := vm.Loops(); len(loops) != 1 || loops[0] != 2 {
		t.Fatalf("got %v", loops)
	}
	// decrement, cell is 1
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	// loop end with nonzero cell
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	if vm.PC() != 3 {
		t.Fatalf("got %v", vm.PC())
	}
	if len(vm.Loops()) != 1 {
		t.Fatalf("got %v", vm.Loops())
	}
	// decrement to zero then loop end pops
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	if len(vm.Loops()) != 0 {
		t.Fatalf("got %v", vm.Loops())
	}
	if err := vm.Step(); !errors.Is(err, ErrEndOfInstructions) {
		t.Fatalf("got %v", err)
	}
}

func TestSkipLoop(t *testing.T) {
	program := []saylang.Op{
		saylang.OpLoopStart, // 0
		saylang.OpIncrement,
		saylang.OpLoopStart,
		saylang.OpWrite,
		saylang.OpLoopEnd,
		saylang.OpForward,
		saylang.OpLoopEnd, // 6
		saylang.OpIncrement,
	}
	vm, out := newTestVM(src(program...), "")
	if err := vm.Reset(); err != nil {
		t.Fatal(err)
	}
	if err := vm.Step(); err != nil {
		t.Fatal(err)
	}
	if vm.PC() != 7 {
		t.Fatalf("got %v", vm.PC())
	}
	if vm.Executed() != 1 {
		t.Fatalf("got %v", vm.Executed())
	}
	if len(vm.Loops()) != 0 {
		t.Fatalf("got %v", vm.Loops())
	}
	if vm.Tape().Len() != 1 || vm.Tape().Get() != 0 {
		t.Fatalf("got %v", vm.Tape())
	}

	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("got %q", out.String())
	}
	if cells := vm.Tape().Cells(); !bytes.Equal(cells, []byte{1}) {
		t.Fatalf("got %v", cells)
	}
	if vm.Executed() != 2 {
		t.Fatalf("got %v", vm.Executed())
	}
}

func TestSkipEmptyLoop(t *testing.T) {
	vm, _ := newTestVM(src(saylang.OpLoopStart, saylang.OpLoopEnd), "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if vm.PC() != 2 {
		t.Fatalf("got %v", vm.PC())
	}
}

func TestUnmatchedEndLoop(t *testing.T) {
	vm, out := newTestVM(src(
		saylang.OpIncrement,
		saylang.OpLoopEnd,
		saylang.OpWrite,
		saylang.OpIncrement,
	), "")
	err := vm.Run()
	if !errors.Is(err, ErrUnmatchedEndLoop) {
		t.Fatalf("got %v", err)
	}
	var posErr saylang.PosError
	if !errors.As(err, &posErr) {
		t.Fatalf("got %T", err)
	}
	if posErr.Pos.Line != 2 {
		t.Fatalf("got %v", posErr.Pos.Line)
	}
	if out.Len() != 0 {
		t.Fatalf("got %q", out.String())
	}
	if vm.Executed() != 1 {
		t.Fatalf("got %v", vm.Executed())
	}
	if vm.PC() != 1 {
		t.Fatalf("got %v", vm.PC())
	}
	if vm.Tape().Get() != 1 {
		t.Fatalf("got %v", vm.Tape().Get())
	}
}

func TestUnmatchedStartLoop(t *testing.T) {
	t.Run("skip runs off the end", func(t *testing.T) {
		vm, _ := newTestVM(src(
			saylang.OpLoopStart,
			saylang.OpIncrement,
			saylang.OpLoopStart,
			saylang.OpLoopEnd,
		), "")
		err := vm.Run()
		if !errors.Is(err, ErrUnmatchedStartLoop) {
			t.Fatalf("got %v", err)
		}
		if vm.PC() != 0 {
			t.Fatalf("got %v", vm.PC())
		}
		if vm.Tape().Get() != 0 {
			t.Fatalf("got %v", vm.Tape().Get())
		}
	})

	t.Run("open loop at end of program", func(t *testing.T) {
		vm, _ := newTestVM(src(
			saylang.OpIncrement,
			saylang.OpLoopStart,
			saylang.OpForward,
		), "")
		err := vm.Run()
		if !errors.Is(err, ErrUnmatchedStartLoop) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "test:2:1") {
			t.Fatalf("got %v", err)
		}
		if vm.Executed() != 3 {
			t.Fatalf("got %v", vm.Executed())
		}
	})
}

func TestOddTokenCount(t *testing.T) {
	vm, out := newTestVM("VPS CMS VPS", "")
	err := vm.Run()
	if !errors.Is(err, saylang.ErrOddTokenCount) {
		t.Fatalf("got %v", err)
	}
	if vm.Tape() != nil {
		t.Fatal("tape should not exist")
	}
	if vm.Executed() != 0 {
		t.Fatalf("got %v", vm.Executed())
	}
	if out.Len() != 0 {
		t.Fatalf("got %q", out.String())
	}
	if err := vm.Step(); !errors.Is(err, saylang.ErrOddTokenCount) {
		t.Fatalf("got %v", err)
	}
}

func TestUnknownPairing(t *testing.T) {
	vm, _ := newTestVM("CMS CMS", "")
	if err := vm.Run(); !errors.Is(err, saylang.ErrUnknownPairing) {
		t.Fatalf("got %v", err)
	}
}

func TestBackwardUnderflow(t *testing.T) {
	vm, _ := newTestVM(src(saylang.OpIncrement, saylang.OpBackward, saylang.OpIncrement), "")
	err := vm.Run()
	if !errors.Is(err, saytape.ErrTapeUnderflow) {
		t.Fatalf("got %v", err)
	}
	if vm.Tape().Get() != 1 {
		t.Fatalf("got %v", vm.Tape().Get())
	}
}

func TestWrap(t *testing.T) {
	vm, out := newTestVM(src(saylang.OpDecrement, saylang.OpWrite), "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{255}) {
		t.Fatalf("got %v", out.Bytes())
	}
}

func TestEcho(t *testing.T) {
	vm, out := newTestVM(src(
		saylang.OpRead,
		saylang.OpWrite,
		saylang.OpForward,
		saylang.OpRead,
		saylang.OpWrite,
	), "Hi!")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Hi" {
		t.Fatalf("got %q", out.String())
	}
}

func TestByteRoundTrip(t *testing.T) {
	input := make([]byte, 256)
	for i := range input {
		input[i] = byte(i)
	}
	// read, write, then loop while the byte just read is nonzero
	program := concat(
		[]saylang.Op{
			saylang.OpRead,
			saylang.OpWrite,
			saylang.OpIncrement,
			saylang.OpLoopStart,
			saylang.OpRead,
			saylang.OpWrite,
			saylang.OpLoopEnd,
		},
	)
	out := new(bytes.Buffer)
	vm := New(
		WithSource("test", src(program...)),
		WithInput(bytes.NewReader(input)),
		WithOutput(out),
	)
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	// the first 0 is read, written, then the loop copies 1..255 and the eof 0
	expected := append(slices.Clone(input), 0)
	if !bytes.Equal(out.Bytes(), expected) {
		t.Fatalf("got %v", out.Bytes())
	}
}

func TestEOFPolicy(t *testing.T) {
	program := src(concat(
		times(saylang.OpIncrement, 7),
		[]saylang.Op{
			saylang.OpRead,
			saylang.OpWrite,
		},
	)...)

	for _, c := range []struct {
		policy   EOFPolicy
		expected byte
	}{
		{EOFZero, 0},
		{EOFKeep, 7},
	} {
		out := new(bytes.Buffer)
		vm := New(
			WithSource("test", program),
			WithInput(strings.NewReader("")),
			WithOutput(out),
			WithEOF(c.policy),
		)
		if err := vm.Run(); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out.Bytes(), []byte{c.expected}) {
			t.Fatalf("%v: got %v", c.policy, out.Bytes())
		}
	}
}

func TestParseEOFPolicy(t *testing.T) {
	for str, expected := range map[string]EOFPolicy{
		"":     EOFZero,
		"zero": EOFZero,
		"keep": EOFKeep,
	} {
		policy, err := ParseEOFPolicy(str)
		if err != nil {
			t.Fatal(err)
		}
		if policy != expected {
			t.Fatalf("%q: got %v", str, policy)
		}
	}
	if _, err := ParseEOFPolicy("sometimes"); err == nil {
		t.Fatal("should error")
	}
}

type failingIO struct{}

var errIO = errors.New("io failed")

func (failingIO) ReadByte() (byte, error) {
	return 0, errIO
}

func (failingIO) Read([]byte) (int, error) {
	return 0, errIO
}

func (failingIO) Write([]byte) (int, error) {
	return 0, errIO
}

func TestIOErrors(t *testing.T) {
	vm := New(
		WithSource("test", src(saylang.OpRead)),
		WithInput(failingIO{}),
	)
	if err := vm.Run(); !errors.Is(err, errIO) {
		t.Fatalf("got %v", err)
	}

	vm = New(
		WithSource("test", src(saylang.OpWrite)),
		WithOutput(failingIO{}),
	)
	if err := vm.Run(); !errors.Is(err, errIO) {
		t.Fatalf("got %v", err)
	}
}

func TestRunResets(t *testing.T) {
	vm, out := newTestVM(src(printA...), "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "AA" {
		t.Fatalf("got %q", out.String())
	}
	if cells := vm.Tape().Cells(); !bytes.Equal(cells, []byte{0, 65}) {
		t.Fatalf("got %v", cells)
	}

	if err := vm.Load("other", src(saylang.OpIncrement)); err != nil {
		t.Fatal(err)
	}
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if cells := vm.Tape().Cells(); !bytes.Equal(cells, []byte{1}) {
		t.Fatalf("got %v", cells)
	}
}

func TestSteps(t *testing.T) {
	vm, _ := newTestVM(src(printA...), "")
	if err := vm.Reset(); err != nil {
		t.Fatal(err)
	}
	n := 0
	loopEnds := 0
	for instr, err := range vm.Steps {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if instr.Op == saylang.OpLoopEnd {
			loopEnds++
		}
	}
	if n != vm.Executed() {
		t.Fatalf("got %v, executed %v", n, vm.Executed())
	}
	if loopEnds != 5 {
		t.Fatalf("got %v", loopEnds)
	}

	// break early
	if err := vm.Reset(); err != nil {
		t.Fatal(err)
	}
	for range vm.Steps {
		break
	}
	if vm.Executed() != 1 {
		t.Fatalf("got %v", vm.Executed())
	}
}

func TestEmptyProgram(t *testing.T) {
	vm, out := newTestVM("no tokens here", "")
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 || vm.Executed() != 0 {
		t.Fatal()
	}
	if err := vm.Step(); !errors.Is(err, ErrEndOfInstructions) {
		t.Fatalf("got %v", err)
	}
}

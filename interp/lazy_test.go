package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brewin-lang/brewin/vm"
)

const sideEffects = `
func side() { print("side"); return 1; }
func t() { print("t"); return true; }
func f() { print("f"); return false; }
`

func TestLazyEvaluation(t *testing.T) {
	runCases(t, vm.V4, []programCase{
		{
			name: "assignment is deferred and memoized",
			src: sideEffects + `
func main() {
  var x;
  x = side();
  print("before");
  print(x);
  print(x);
}`,
			want: []string{"before", "side", "1", "1"},
		},
		{
			name: "unused value is never computed",
			src: sideEffects + `
func main() {
  var x;
  x = side();
  print("done");
}`,
			want: []string{"done"},
		},
		{
			name: "thunk sees variables as of its creation",
			src: `
func main() {
  var x;
  var y;
  x = 1;
  y = x + 1;
  x = 10;
  print(y, " ", x);
}`,
			want: []string{"2 10"},
		},
		{
			name: "arguments are bound lazily",
			src: `
func first(a, b) { print("in first"); return a; }
func g() { print("g"); return 2; }
func main() { print(first(g(), g() + 1)); }`,
			want: []string{"in first", "g", "2"},
		},
		{
			name: "unused argument never raises",
			src: `
func ignore(a) { return 1; }
func main() { print(ignore(1 / 0)); }`,
			want: []string{"1"},
		},
		{
			name: "deferred input",
			src: `
func main() {
  var x;
  x = inputi("number?");
  print("asked");
  print(x * 2);
}`,
			inputs: []string{"21"},
			want:   []string{"asked", "number?", "42"},
		},
		{
			name: "short circuit",
			src: sideEffects + `
func main() {
  print(f() && t());
  print(t() || f());
  print(t() && f());
}`,
			want: []string{"f", "false", "t", "true", "t", "f", "false"},
		},
		{
			name: "short circuit skips a bad right operand",
			src:  `func main() { print(false && 1); print(true || "x"); }`,
			want: []string{"false", "true"},
		},
		{
			name: "loop with lazy counters",
			src:  `func main() { var i; for (i = 3; i > 0; i = i - 1) { print(i); } }`,
			want: []string{"3", "2", "1"},
		},
	})
}

func TestExceptions(t *testing.T) {
	runCases(t, vm.V4, []programCase{
		{
			name: "caught by matching catcher",
			src: `
func thrower(x) {
  if (x > 0) { raise "positive"; }
  return x;
}
func main() {
  try {
    print("a");
    thrower(1);
    print("not reached");
  } catch "negative" {
    print("wrong");
  } catch "positive" {
    print("caught positive");
  }
  print("after");
}`,
			want: []string{"a", "caught positive", "after"},
		},
		{
			name: "division by zero raises div0",
			src: `
func main() {
  try {
    var x;
    x = 10 / 0;
    print("assigned");
    print(x);
  } catch "div0" {
    print("div0 caught");
  }
}`,
			want: []string{"assigned", "div0 caught"},
		},
		{
			name: "unmatched exception propagates outward",
			src: `
func main() {
  try {
    try { raise "b"; } catch "a" { print("a"); }
    print("skipped");
  } catch "b" {
    print("outer b");
  }
}`,
			want: []string{"outer b"},
		},
		{
			name: "tag is an expression",
			src:  `func main() { try { raise "x" + "y"; } catch "xy" { print("xy"); } }`,
			want: []string{"xy"},
		},
		{
			name: "exception raised by a thunk is memoized",
			src: `
func boom() { print("boom"); raise "e"; }
func main() {
  var x;
  x = boom();
  try { print(x); } catch "e" { print("first"); }
  try { print(x); } catch "e" { print("second"); }
}`,
			want: []string{"boom", "first", "second"},
		},
		{
			name: "return inside try",
			src: `
func f() {
  try { return 5; } catch "x" { }
  return 0;
}
func main() { print(f()); }`,
			want: []string{"5"},
		},
		{
			name: "raise from a catch body",
			src: `
func main() {
  try {
    try { raise "a"; } catch "a" { raise "b"; }
  } catch "b" {
    print("rethrown");
  }
}`,
			want: []string{"rethrown"},
		},
		{
			name: "exception from a condition",
			src: `
func bad() { raise "cond"; }
func main() {
  try {
    if (bad()) { print("no"); }
  } catch "cond" {
    print("from condition");
  }
}`,
			want: []string{"from condition"},
		},
	})
}

func TestExceptionErrors(t *testing.T) {
	runErrorCases(t, vm.V4, []errorCase{
		{name: "uncaught exception", src: `func main() { raise "oops"; }`, want: vm.FaultError},
		{name: "uncaught div0", src: `func main() { print(1 / 0); }`, want: vm.FaultError},
		{name: "raise a non string", src: `func main() { raise 1; }`, want: vm.TypeError},
		{name: "type check before div0", src: `func main() { print("a" / 0); }`, want: vm.TypeError},
		{name: "try variables hidden from catch", src: `func main() { try { var z; z = 1; raise "e"; } catch "e" { print(z); } }`, want: vm.NameError},
		{name: "non bool left operand", src: `func main() { print(1 && true); }`, want: vm.TypeError},
		{name: "no int to bool coercion", src: `func main() { if (1) { } }`, want: vm.TypeError},
	})
}

func TestLazyErrorIsDeferred(t *testing.T) {
	out, err := runProgram(t, vm.V4, `
func main() {
  var x;
  x = undefined;
  print("ok");
  print(x);
}`)
	requireErrorType(t, err, vm.NameError)
	assert.Equal(t, []string{"ok"}, out)
}

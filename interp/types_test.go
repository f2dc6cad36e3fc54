package interp

import (
	"testing"

	"github.com/brewin-lang/brewin/vm"
)

const dogStruct = `
struct dog {
  name: string;
  age: int;
  good: bool;
  friend: dog;
}
`

const nodeStruct = `
struct node {
  value: int;
  next: node;
}
`

func TestTypedPrograms(t *testing.T) {
	runCases(t, vm.V3, []programCase{
		{
			name: "default values",
			src: dogStruct + `
func main() : void {
  var i: int;
  var b: bool;
  var s: string;
  var d: dog;
  print(i, " ", b, " [", s, "] ", d);
  d = new dog;
  print(d.age, " ", d.good, " ", d.friend, " [", d.name, "]");
}`,
			want: []string{"0 false [] nil", "0 false nil []"},
		},
		{
			name: "int to bool coercion",
			src: `
func f(b: bool) : bool { return b; }
func g() : bool { return 5; }
func main() : void {
  var b: bool;
  b = 0;
  print(b);
  print(f(2), " ", g());
  if (3) { print("yes"); }
  print(!0, " ", 1 && true, " ", 0 || false);
  print(1 == true, " ", 0 == false, " ", 2 != true);
}`,
			want: []string{"false", "true true", "yes", "true true false", "true true false"},
		},
		{
			name: "objects are shared by reference",
			src: nodeStruct + `
func set(n: node, v: int) : void { n.value = v; }
func main() : void {
  var a: node;
  var b: node;
  a = new node;
  b = a;
  set(b, 7);
  print(a.value);
  a.next = new node;
  a.next.value = 9;
  print(b.next.value);
  print(a == b, " ", a == a.next, " ", a.next.next == nil, " ", a != nil);
}`,
			want: []string{"7", "9", "true false true true"},
		},
		{
			name: "distinct objects with equal fields are not equal",
			src: nodeStruct + `
func main() : void {
  var a: node;
  var b: node;
  a = new node;
  b = new node;
  print(a == b, " ", a != b, " ", a.value == b.value, " ", a.next == b.next);
}`,
			want: []string{"false true true true"},
		},
		{
			name: "default return values",
			src: nodeStruct + `
func i() : int { }
func s() : string { return; }
func b() : bool { }
func n() : node { }
func main() : void { print(i(), "|", s(), "|", b(), "|", n()); }`,
			want: []string{"0||false|nil"},
		},
		{
			name: "void function as a statement",
			src: `
func hello(name: string) : void { print("hello ", name); return; }
func main() : void { hello("bob"); }`,
			want: []string{"hello bob"},
		},
		{
			name: "linked list",
			src: nodeStruct + `
func push(head: node, v: int) : node {
  var n: node;
  n = new node;
  n.value = v;
  n.next = head;
  return n;
}
func main() : void {
  var head: node;
  var i: int;
  for (i = 1; i <= 3; i = i + 1) {
    head = push(head, i);
  }
  for (i = 0; head != nil; i = i + 1) {
    print(head.value);
    head = head.next;
  }
}`,
			want: []string{"3", "2", "1"},
		},
	})
}

func TestTypedErrors(t *testing.T) {
	runErrorCases(t, vm.V3, []errorCase{
		{name: "unknown variable type", src: `func main() : void { var x: cat; }`, want: vm.TypeError},
		{name: "void variable", src: `func main() : void { var x: void; }`, want: vm.TypeError},
		{name: "string into int", src: `func main() : void { var x: int; x = "a"; }`, want: vm.TypeError},
		{name: "bool into int", src: `func main() : void { var x: int; x = true; }`, want: vm.TypeError},
		{name: "nil into int", src: `func main() : void { var x: int; x = nil; }`, want: vm.TypeError},
		{name: "wrong struct type", src: dogStruct + nodeStruct + `func main() : void { var d: dog; d = new node; }`, want: vm.TypeError},
		{name: "void value assigned", src: `func f() : void { } func main() : void { var x: int; x = f(); }`, want: vm.TypeError},
		{name: "void value printed", src: `func f() : void { } func main() : void { print(f()); }`, want: vm.TypeError},
		{name: "void function returns a value", src: `func f() : void { return 1; } func main() : void { f(); }`, want: vm.TypeError},
		{name: "nil returned from int function", src: `func f() : int { return nil; } func main() : void { print(f()); }`, want: vm.TypeError},
		{name: "string returned from int function", src: `func f() : int { return "a"; } func main() : void { print(f()); }`, want: vm.TypeError},
		{name: "parameter mismatch", src: `func f(a: int) : void { } func main() : void { f("x"); }`, want: vm.TypeError},
		{name: "unknown parameter type", src: `func f(a: cat) : void { } func main() : void { }`, want: vm.TypeError},
		{name: "unknown return type", src: `func f() : cat { } func main() : void { }`, want: vm.TypeError},
		{name: "new of unknown struct", src: dogStruct + `func main() : void { var d: dog; d = new cat; }`, want: vm.TypeError},
		{name: "new with unknown field type", src: `struct bad { x: cat; } func main() : void { var b: bad; b = new bad; }`, want: vm.TypeError},
		{name: "string equals int", src: `func main() : void { print("a" == 1); }`, want: vm.TypeError},
		{name: "nil equals int", src: `func main() : void { print(nil == 1); }`, want: vm.TypeError},
		{name: "different struct types compared", src: dogStruct + nodeStruct + `func main() : void { var d: dog; var n: node; d = new dog; n = new node; print(d == n); }`, want: vm.TypeError},
		{name: "struct compared with int", src: dogStruct + `func main() : void { var d: dog; d = new dog; print(d == 1); }`, want: vm.TypeError},
		{name: "print result compared with nil", src: `func main() : void { print(print("x") == nil); }`, want: vm.TypeError},
		{name: "print result assigned to object", src: dogStruct + `func main() : void { var p: dog; p = print("x"); }`, want: vm.TypeError},
		{name: "print result passed as argument", src: `func f(b: bool) : void { } func main() : void { f(print("x")); }`, want: vm.TypeError},
		{name: "field of a primitive", src: `func main() : void { var x: int; print(x.y); }`, want: vm.TypeError},
		{name: "bool arithmetic is not coerced", src: `func main() : void { print(true + 1); }`, want: vm.TypeError},
		{name: "string condition", src: `func main() : void { if ("a") { } }`, want: vm.TypeError},
	})
}

func TestTypedFieldErrors(t *testing.T) {
	runErrorCases(t, vm.V3, []errorCase{
		{name: "missing field", src: dogStruct + `func main() : void { var d: dog; d = new dog; d.nope = 1; }`, want: vm.NameError},
		{name: "missing field read", src: dogStruct + `func main() : void { var d: dog; d = new dog; print(d.nope); }`, want: vm.NameError},
		{name: "nil dereference", src: dogStruct + `func main() : void { var d: dog; print(d.age); }`, want: vm.FaultError},
		{name: "nil dereference on assignment", src: dogStruct + `func main() : void { var d: dog; d.age = 1; }`, want: vm.FaultError},
		{name: "target resolved before value", src: dogStruct + `func main() : void { var d: dog; d.age = undefined; }`, want: vm.FaultError},
		{name: "nested nil dereference", src: dogStruct + `func main() : void { var d: dog; d = new dog; d.friend.age = 3; }`, want: vm.FaultError},
	})
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brewin-lang/brewin"
	"github.com/brewin-lang/brewin/ast"
	"github.com/brewin-lang/brewin/interp"
	"github.com/brewin-lang/brewin/vm"
)

var (
	file    = flag.String("file", "", "Source file")
	version = flag.String("version", "4", "Language version (1-4)")
)

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("--file is required")
	}
	v, err := vm.ParseVersion(*version)
	if err != nil {
		log.Fatal(err)
	}
	var loader brewin.Loader
	prog, err := loader.LoadFile(*file, v)
	if err != nil {
		log.Fatalf("couldn't load: %s", err)
	}
	trace(prog)
}

func trace(prog *vm.Program) {
	in := interp.New(prog, interp.NewStreamConsole(os.Stdin, os.Stdout))
	steps := 0
	in.OnStep = func(f *interp.StackFrame, s ast.Stmt) {
		steps++
		fmt.Println("*******")
		prettyPrint(in, f, s)
	}
	if err := in.Run(); err != nil {
		log.Fatalln("Got err:", err)
	}
	fmt.Printf("Finished after %d statements\n", steps)
}

func prettyPrint(in *interp.Interpreter, f *interp.StackFrame, s ast.Stmt) {
	fmt.Printf("Depth: %d\n", len(in.Stack()))
	fmt.Print(f)
	fmt.Printf("NextStmt: line %d %s\n", s.Pos(), describe(s))
}

func describe(s ast.Stmt) string {
	switch s := s.(type) {
	case *ast.VarDef:
		return "var " + s.Name
	case *ast.Assign:
		return strings.Join(s.Target, ".") + " = ..."
	case *ast.CallStmt:
		return s.Call.Name + "(...)"
	case *ast.If:
		return "if"
	case *ast.For:
		return "for"
	case *ast.Return:
		return "return"
	case *ast.Raise:
		return "raise"
	case *ast.Try:
		return "try"
	}
	return fmt.Sprintf("%T", s)
}

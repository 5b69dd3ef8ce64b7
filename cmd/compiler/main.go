package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekuo/veil-treewalk/internal/runtime"
	"github.com/littlekuo/veil-treewalk/internal/syntax"
)

func main() {
	printAST := flag.Bool("print", false, "print the parenthesized AST instead of writing a document")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(64)
	}

	rt := runtime.NewStd()

	if *printAST {
		src, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(65)
		}
		doc := rt.Compile(string(src))
		fmt.Println(syntax.AstPrinter{}.Print(doc.AST))
		return
	}

	outPath := ""
	if len(args) == 2 {
		outPath = args[1]
	}
	written, doc, err := rt.CompileFile(args[0], outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(65)
	}
	fmt.Printf("compiled %s -> %s\n", args[0], written)
	fmt.Printf("AST nodes: %d\n", len(doc.AST.Body))
	fmt.Printf("tokens: %d\n", len(doc.Tokens))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: compiler [--print] <input%s> [output%s]\n",
		runtime.SourceExt, runtime.DocumentExt)
}

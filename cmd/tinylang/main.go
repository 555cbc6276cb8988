// Package main provides the tinylang compiler entry point.
//
// The command is a thin presentation shell over the pipeline: it reads one
// source file (or stdin), runs the full compilation, renders any phase
// artifacts the caller asked for, and writes the emitted target text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hassan/tinylang/internal/codegen"
	"github.com/hassan/tinylang/internal/parser/ast"
	"github.com/hassan/tinylang/internal/pipeline"
)

func main() {
	showTokens := flag.Bool("tokens", false, "print the token stream")
	showAST := flag.Bool("ast", false, "print the syntax tree")
	showIR := flag.Bool("ir", false, "print the IR before and after optimization")
	optimize := flag.Bool("O", true, "emit optimized code (false emits unoptimized IR as code)")
	output := flag.String("o", "", "write emitted code to a file instead of stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <source-file | ->\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source: %v\n", err)
		os.Exit(1)
	}

	result := pipeline.Compile(source)

	if *showTokens && result.Tokens != nil {
		fmt.Println("=== Tokens ===")
		for _, tok := range result.Tokens {
			fmt.Printf("  %s %q at %s\n", tok.Type, tok.Text, tok.Position)
		}
	}

	if *showAST && result.AST != nil {
		fmt.Println("=== AST ===")
		fmt.Print(ast.Dump(result.AST))
	}

	if *showIR && result.IR != nil {
		fmt.Println("=== IR ===")
		for _, inst := range result.IR {
			fmt.Printf("  %s\n", inst)
		}
		if result.OptimizedIR != nil {
			fmt.Println("=== Optimized IR ===")
			for _, inst := range result.OptimizedIR {
				fmt.Printf("  %s\n", inst)
			}
		}
	}

	if !result.Success {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s\n", d)
		}
		os.Exit(1)
	}

	code := result.Code
	if !*optimize {
		// Re-emit from the unoptimized IR so the raw lowering is visible.
		code, err = codegen.Generate(result.IR)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error emitting unoptimized code: %v\n", err)
			os.Exit(1)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(code)
}

// readSource loads the program text from a file, or from stdin when the
// argument is "-".
func readSource(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(arg)
	return string(data), err
}

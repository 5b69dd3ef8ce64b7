package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/littlekuo/veil-treewalk/internal/document"
	"github.com/littlekuo/veil-treewalk/internal/interpreter"
	"github.com/littlekuo/veil-treewalk/internal/runtime"
)

const (
	historyFile = ".veil_history"
	prompt      = "veil> "
)

var replKeywords = []string{
	"var", "func", "if", "else", "while", "return", "break", "continue",
	"true", "false", "null",
}

func main() {
	args := os.Args[1:]

	switch len(args) {
	case 0:
		runPrompt()
	case 1:
		runFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: interpreter [script]")
		os.Exit(64)
	}
}

func runFile(path string) {
	rt := runtime.NewStd()
	if _, err := rt.RunFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime Error: %s\n", err)
		os.Exit(65)
	}
}

func runPrompt() {
	fmt.Printf("%s %s interactive interpreter\nCtrl+C cancels input, Ctrl+D exits.\n",
		document.Language, document.Version)

	rt := runtime.NewStd()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ln.SetCompleter(func(line string) []string {
		word := line
		if idx := strings.LastIndexAny(line, " \t(,"); idx >= 0 {
			word = line[idx+1:]
		}
		if word == "" {
			return nil
		}
		prefix := line[:len(line)-len(word)]
		var out []string
		for _, name := range rt.Interpreter().Globals().Names() {
			if strings.HasPrefix(name, word) {
				out = append(out, prefix+name)
			}
		}
		for _, kw := range replKeywords {
			if strings.HasPrefix(kw, word) {
				out = append(out, prefix+kw)
			}
		}
		return out
	})

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := rt.RunSource(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Runtime Error: %s\n", err)
		} else if result.Tag != interpreter.TAG_NULL {
			fmt.Println(result.String())
		}
		ln.AppendHistory(line)
	}
}

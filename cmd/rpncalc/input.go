package main

import (
	"fmt"
	"io"
	"os"
)

// exprInput описывает источник выражения: файл, stdin или строка из -e.
type exprInput struct {
	Path    string // непустой, когда выражение читается из файла
	Name    string // отображаемое имя для диагностик
	Content []byte // содержимое для виртуальных источников
	Virtual bool
}

// resolveInput выбирает источник: флаг -e имеет приоритет, "-" означает
// stdin, иначе аргумент трактуется как путь к файлу.
func resolveInput(expr string, args []string) (exprInput, error) {
	if expr != "" {
		return exprInput{Name: "<expr>", Content: []byte(expr), Virtual: true}, nil
	}
	if len(args) == 0 {
		return exprInput{}, fmt.Errorf("no input: pass a file, \"-\" for stdin, or use -e")
	}
	if args[0] == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return exprInput{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return exprInput{Name: "<stdin>", Content: content, Virtual: true}, nil
	}
	return exprInput{Path: args[0], Name: args[0]}, nil
}

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirkon/message"

	"github.com/sirkon/go-sumiter/internal/unify"
)

func main() {
	var args struct {
		Tag    string `arg:"-t" help:"build tag guarding the template file"`
		Output string `arg:"-o" help:"output file path, FILE with _sumiter.go suffix by default"`
		Dry    bool   `arg:"-n" help:"print generated source to stdout instead of writing it"`
		FILE   string `arg:"positional,required" help:"template file to process"`
	}
	args.Tag = unify.DefaultTag
	p := arg.MustParse(&args)

	if !strings.HasSuffix(args.FILE, ".go") {
		p.Fail("FILE must be go file")
	}
	if unify.IsOutput(args.FILE) {
		p.Fail("FILE must be a template, not a generated file")
	}
	if args.Tag == "" {
		p.Fail("tag must not be empty")
	}
	if args.Output == "" {
		args.Output = unify.OutputName(args.FILE)
	}

	res, err := unify.Generate(unify.Config{
		File: args.FILE,
		Tag:  args.Tag,
	})
	if err != nil {
		var lst unify.ErrorList
		if !errors.As(err, &lst) {
			message.Fatal(err)
		}
		for _, l := range lst {
			message.Error(l)
		}
		os.Exit(1)
	}

	if args.Dry {
		if _, err := os.Stdout.Write(res); err != nil {
			message.Fatal(err)
		}
		return
	}

	if err := os.WriteFile(args.Output, res, 0644); err != nil {
		message.Fatal(err)
	}
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/astree"
	"github.com/zephyrtronium/astree/latex"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb       string
		with               [][2]string
		echo, levels, ltex bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&levels, "levels", false, "print the symbols of each tree level")
	flag.BoolVar(&ltex, "latex", false, "print LaTeX markup for each expression")
	flag.Parse()

	vars := make(map[string]float64, len(with))
	for _, d := range with {
		nm, vl := d[0], d[1]
		r, err := astree.EvalString(vl, vars)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		vars[nm] = r
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		defer f.Close()
		lines, err := readlines(f)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, lines...)
	}
	srcs = append(srcs, flag.Args()...)

	var p []*astree.AST
	for _, src := range srcs {
		a, err := astree.Parse(src)
		if err != nil {
			log.Fatalf("%q: %v", src, err)
		}
		p = append(p, a)
	}

	verb += "\n"
	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		if r, err := a.Eval(vars); err != nil {
			fmt.Println(err)
		} else {
			fmt.Printf(verb, r)
		}
		if levels {
			for i, l := range a.LevelOrder() {
				fmt.Printf("%d: %s\n", i+1, strings.Join(l, " "))
			}
		}
		if ltex {
			fmt.Println(latex.Render(a, a.Symbols()))
		}
	}
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// readlines reads the non-blank lines of r.
func readlines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, sc.Err()
}

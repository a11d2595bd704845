// Command songfilter-lint parses one or more song-filter expressions and
// prints each one's canonical form (optimized first when --optimize is
// given), or a diagnostic if it fails to parse.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jaqx0r/songfilter"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "songfilter-lint",
		Usage: "parse and canonicalize song-filter expressions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fold-case",
				Usage: "top-level fold-case flag passed to parse",
			},
			&cli.BoolFlag{
				Name:  "no-regex",
				Usage: "disable the =~/!~ regex operator",
			},
			&cli.BoolFlag{
				Name:  "optimize",
				Usage: "optimize the filter tree before printing",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	foldCase := c.Bool("fold-case")
	opts := []songfilter.Option{songfilter.WithRegex(!c.Bool("no-regex"))}
	optimize := c.Bool("optimize")

	exprs := c.Args().Slice()
	if len(exprs) == 0 {
		var err error
		exprs, err = readLines(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	failed := false
	for _, expr := range exprs {
		f := songfilter.New(opts...)
		if err := f.Parse([]string{expr}, foldCase); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", expr, err)
			failed = true
			continue
		}
		if optimize {
			f.Optimize()
		}
		fmt.Println(f.ToExpression())
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

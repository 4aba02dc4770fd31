package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/master-g/sim86/go/sim86"
	"gopkg.in/urfave/cli.v2"
)

type stderrLogger struct{}

func (stderrLogger) Log(msg string) { fmt.Fprintln(os.Stderr, msg) }

func main() {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "exec",
				Aliases: []string{"x"},
				Usage:   "simulate execution instead of decode-only",
			},
			&cli.BoolFlag{
				Name:    "decorate",
				Aliases: []string{"d"},
				Usage:   "ANSI-colorize the trace output",
			},
			&cli.BoolFlag{
				Name:  "clock",
				Usage: "annotate each line with its clock-cycle breakdown",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log driver progress to stderr",
			},
		},
		Name:    "sim86",
		Usage:   "disassemble and simulate a 16-bit 8086 instruction stream",
		Version: "v0.1.0",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("missing input file", 86)
			}
			program, err := os.ReadFile(c.Args().Get(0))
			if err != nil {
				return cli.Exit(fmt.Sprintf("reading input: %v", err), 1)
			}

			if c.Bool("verbose") {
				sim86.SetLogger(stderrLogger{})
				sim86.SetLogEnable(true)
			}

			driver := sim86.NewDriver(program, sim86.Options{
				Execute:  c.Bool("exec"),
				Clock:    c.Bool("clock"),
				Decorate: c.Bool("decorate"),
			})
			if err := driver.Run(os.Stdout); err != nil {
				return cli.Exit(fmt.Sprintf("simulate: %v", err), 1)
			}
			return nil
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/weberc2/mfs/pkg/image"
)

// shell holds the state that outlives a single command: the image and where
// commands read and write.
type shell struct {
	img  *image.Image
	conf *Config
	in   io.Reader
	out  io.Writer

	// interactive is set while the shell loop runs.
	interactive bool
}

// loop reads one command per line and runs it until end of input or
// `quit`/`exit`. Failed commands are reported and the loop carries on.
func (sh *shell) loop() error {
	sh.interactive = true
	defer func() { sh.interactive = false }()
	scanner := bufio.NewScanner(sh.in)
	for {
		fmt.Fprint(sh.out, sh.conf.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		sh.exec(fields)
	}
}

// exec runs a single tokenized command line.
func (sh *shell) exec(fields []string) {
	if err := sh.app().Run(append([]string{appName}, fields...)); err != nil {
		fmt.Fprintf(sh.out, "ERROR: %v\n", err)
	}
}

// Command mdedit runs an editing session over a Markdown file from the
// command line.
//
//	mdedit [flags] FILE [command args...] [; command args...]
//
// Commands run in order against one session; see "mdedit FILE help".
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"

	"github.com/cds-snc/mdedit/internal/config"
	"github.com/cds-snc/mdedit/internal/hostui"
	"github.com/cds-snc/mdedit/internal/hostutil"
	"github.com/cds-snc/mdedit/internal/logging/gologger"
	"github.com/cds-snc/mdedit/internal/store"
)

func init() {
	pp.ColoringEnabled = false
}

func main() {
	configPath := flag.String("config", "", "settings file; defaults to the nearest "+config.FileName)
	outPath := flag.String("o", "", "save to this file instead of FILE")
	script := flag.String("s", "", "read commands from this file, or - for standard input")
	color := flag.Bool("color", false, "colorize dump output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] FILE [command args...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	pp.ColoringEnabled = *color

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not load config"))
	}
	logs, err := gologger.NewProvider(cfg.LoggerConfig())
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not configure logging"))
	}

	var ui ui
	ui.args = []string{filepath.Base(os.Args[0]), args[0]}
	ui.cfg = cfg
	ui.logs = logs
	ui.src = store.NewFile(args[0])
	if *outPath != "" {
		ui.dst = store.NewFile(*outPath)
	}

	if err := run(os.Stdout, &ui, args[1:], *script); err != nil {
		log.Fatalln(err)
	}
}

// run serves the command line arguments, followed by the script's commands
// when one is given.
func run(out io.Writer, ui *ui, args []string, script string) error {
	if script == "" {
		return hostui.ArgsRequest(args).Serve(out, ui)
	}
	r, err := openScript(script)
	if err != nil {
		return errors.Wrap(err, "could not open script")
	}
	defer r.Close()
	head := append(hostutil.QuotedArgs(args), '\n')
	return hostui.ScriptRequest(io.MultiReader(bytes.NewReader(head), r)).Serve(out, ui)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Find()
	return cfg, err
}

func openScript(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

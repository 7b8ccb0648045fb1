/*
Package hostui turns free form request text into commands for a handler,
and collects the handler's response.

A request body is a script of commands separated by newlines or ";", each
holding space separated args that may be quoted with Go string syntax. The
CLI adapts its args into one such script; a script file or standard input
works the same way.
*/
package hostui

import (
	"bufio"
	"bytes"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/cds-snc/mdedit/internal/hostutil"
)

// Handler is implemented by request handling logic.
type Handler interface {
	ServeUser(req *Request, resp *Response) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *Request, resp *Response) error

// ServeUser calls f.
func (f HandlerFunc) ServeUser(req *Request, resp *Response) error { return f(req, resp) }

// Request is a command script being handled. It tracks scan errors and
// splits the script into commands and args.
type Request struct {
	err  error
	body io.Reader
	cmd  *bufio.Scanner
	arg  *bufio.Scanner
}

// Response is written by a Handler, and flushed to the Serve writer a line
// at a time.
type Response struct {
	hostutil.WriteBuffer
}

// CLIRequest builds an ArgsRequest from flag.Args, or from the process
// args when flags have not been parsed.
func CLIRequest() Request {
	args := flag.Args()
	if args == nil {
		args = os.Args[1:]
	}
	return ArgsRequest(args)
}

// ArgsRequest builds a Request from argument strings; a lone ";" arg
// separates commands.
func ArgsRequest(args []string) Request {
	return ScriptRequest(bytes.NewReader(hostutil.QuotedArgs(args)))
}

// ScriptRequest builds a Request that reads its commands from r.
func ScriptRequest(r io.Reader) Request {
	return Request{body: r}
}

// Serve runs handler with the request and a Response writing to w. It
// returns the first of any handler, request, or response error.
func (req Request) Serve(w io.Writer, handler Handler) (rerr error) {
	if err := req.err; err != nil {
		return err
	}
	var resp Response
	resp.To = w
	defer func() {
		if ferr := resp.Flush(); rerr == nil {
			rerr = ferr
		}
	}()
	if err := handler.ServeUser(&req, &resp); err != nil {
		return err
	}
	return req.err
}

// Err returns any scan error encountered.
func (req *Request) Err() error { return req.err }

// Scan advances to the next command in the script, resetting arg state.
func (req *Request) Scan() bool {
	if req.err != nil || req.body == nil {
		return false
	}
	if req.cmd == nil {
		req.cmd = bufio.NewScanner(req.body)
		req.cmd.Split(hostutil.ScanCommands)
	}
	req.arg = nil
	if req.cmd.Scan() {
		return true
	}
	req.err = req.cmd.Err()
	return false
}

// ScanArg advances to the next arg of the current command, scanning the first
// command if none has been.
func (req *Request) ScanArg() bool {
	if req.err != nil {
		return false
	}
	if req.arg == nil {
		if req.cmd == nil && !req.Scan() {
			return false
		}
		req.arg = bufio.NewScanner(bytes.NewReader(req.cmd.Bytes()))
		req.arg.Split(hostutil.ScanArgs)
	}
	if req.arg.Scan() {
		return true
	}
	req.err = req.arg.Err()
	return false
}

// Command returns the raw text of the current command.
func (req *Request) Command() string {
	if req.cmd == nil {
		return ""
	}
	return req.cmd.Text()
}

// Arg returns the current arg, unquoted.
func (req *Request) Arg() string {
	if req.arg == nil {
		return ""
	}
	return hostutil.UnquoteArg(req.arg.Text())
}

// Rest scans every remaining arg of the current command, returning them
// unquoted.
func (req *Request) Rest() []string {
	var args []string
	for req.ScanArg() {
		args = append(args, req.Arg())
	}
	return args
}

// RestText is Rest joined by single spaces.
func (req *Request) RestText() string {
	return strings.Join(req.Rest(), " ")
}

// wiredump decodes hex-encoded wire frames and prints their typed form.
// Frames arrive one per line from a file argument or stdin, the way they
// come out of a transport capture.
package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gln/wire"
)

var (
	reencodeFlag = &cli.BoolFlag{
		Name:  "reencode",
		Usage: "re-encode each decoded message and verify the bytes match the input frame",
	}
	quietFlag = &cli.BoolFlag{
		Name:  "quiet",
		Usage: "suppress message dumps, only report errors",
	}
)

var app = &cli.App{
	Name:      "wiredump",
	Usage:     "decode hex-encoded payment-channel wire frames",
	ArgsUsage: "[capture file]",
	Flags:     []cli.Flag{reencodeFlag, quietFlag},
	Action:    dump,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(ctx *cli.Context) error {
	var in io.Reader = os.Stdin
	if path := ctx.Args().First(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	conf := spew.ConfigState{Indent: "  "}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 256*1024), 256*1024)

	var failures int
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		frame, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: bad hex: %v\n", line, err)
			failures++
			continue
		}
		msg, err := wire.DecodeMessage(frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			failures++
			continue
		}
		if !ctx.Bool(quietFlag.Name) {
			fmt.Printf("line %d: %s\n%s", line, msg.MsgType(), conf.Sdump(msg))
		}
		if ctx.Bool(reencodeFlag.Name) {
			out, err := wire.EncodeMessage(msg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "line %d: re-encode: %v\n", line, err)
				failures++
				continue
			}
			if !bytes.Equal(out, frame) {
				fmt.Fprintf(os.Stderr, "line %d: re-encode mismatch:\n  in:  %x\n  out: %x\n", line, frame, out)
				failures++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d frame(s) failed", failures)
	}
	return nil
}

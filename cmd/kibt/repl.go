package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/bytecode"
	"github.com/npillmayer/kibt/compiler"
	"github.com/npillmayer/kibt/library"
	"github.com/npillmayer/kibt/vm"
	"github.com/pterm/pterm"
)

// runREPL starts an interactive session, where users may enter kibt
// expressions. Every line is compiled and run against the standalone table,
// and the result is printed.
func runREPL(cfg *config) int {
	initDisplay()
	pterm.Info.Println("Welcome to kibt")
	repl, err := readline.New("kibt> ")
	if err != nil {
		tracer().Errorf("%v", err)
		return 3
	}
	defer repl.Close()
	intp := &Intp{
		repl:    repl,
		lib:     library.StandaloneTable[*library.Console](),
		console: &library.Console{Out: repl.Stdout()},
	}
	// sources on the command line are evaluated first
	for _, src := range cfg.sources {
		intp.Eval(src)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
	return 0
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	lib     *kibt.Library[*library.Console]
	console *library.Console
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit, _ := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a single line of input. It returns true if the user wants
// to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	switch {
	case line == ":quit":
		return true, nil
	case strings.HasPrefix(line, ":dis"):
		code, err := intp.compile(strings.TrimPrefix(line, ":dis"))
		if err != nil {
			return false, err
		}
		pterm.Println(bytecode.Disassemble(code, intp.lib.Names()...))
		return false, nil
	case strings.HasPrefix(line, ":step"):
		code, err := intp.compile(strings.TrimPrefix(line, ":step"))
		if err != nil {
			return false, err
		}
		rows, err := stepTrace(code, intp.lib, intp.console)
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		if err != nil {
			pterm.Error.Println(err.Error())
		}
		return false, err
	}
	code, err := intp.compile(line)
	if err != nil {
		return false, err
	}
	v, err := vm.New(code, intp.lib, intp.console).Run(context.Background())
	if err != nil {
		pterm.Error.Println(err.Error())
		return false, err
	}
	pterm.Info.Println(kibt.Display(v))
	return false, nil
}

func (intp *Intp) compile(src string) ([]byte, error) {
	code, err := compiler.Compile(strings.TrimSpace(src), intp.lib)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, err
	}
	return code, nil
}

// stepTrace runs code one instruction at a time and records a table row per
// instruction: address, instruction, and the operand stack afterwards. The
// seeded natives are left out of the stack column. The first row is a
// header.
func stepTrace[E kibt.Environment](code []byte, lib *kibt.Library[E], env E) ([][]string, error) {
	rows := [][]string{{"PC", "Instruction", "Stack"}}
	m := vm.New(code, lib, env)
	for !m.End() {
		pc := m.PC()
		instr := bytecode.Opcode(code[pc]).String()
		if ins, err := bytecode.Decode(code, pc); err == nil {
			instr = ins.String()
		}
		err := m.Tick()
		rows = append(rows, []string{fmt.Sprintf("%04d", pc), instr, stackString(m.Stack(), lib.Len())})
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

func stackString(stack []kibt.Value, globals int) string {
	if globals > len(stack) {
		globals = len(stack)
	}
	s := make([]string, 0, len(stack)-globals)
	for _, v := range stack[globals:] {
		s = append(s, kibt.Display(v))
	}
	return "[" + strings.Join(s, ", ") + "]"
}

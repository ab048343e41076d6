package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontfit/fontstack"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontfit.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontfit.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.fontfit.cli": "Info",
		"trace.fontfit":     "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Primary font to load")
	stackfile := flag.String("stack", "", "Font stack (JSON) to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the fontfit CLI")
	//
	// set up REPL
	repl, err := readline.New("fit > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := newIntp(repl)
	//
	// load stack or font to use
	if *stackfile != "" {
		if err := intp.loadStack(*stackfile); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	if *fontname != "" {
		if err := intp.addFontFile(*fontname); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D, type 'help' for a list of commands")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
		tracing.Select("fontfit").SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object. It edits a single font stack.
type Intp struct {
	repl  *readline.Instance
	stack *fontstack.Stack
	lang  language.Tag // language scope for override edits, Und = default
	px    float64      // font size for guides
	file  string       // file the stack has been loaded from or saved to
}

func newIntp(repl *readline.Instance) *Intp {
	return &Intp{
		repl:  repl,
		stack: fontstack.New(),
		lang:  language.Und,
		px:    16,
	}
}

func (intp *Intp) String() string {
	if intp == nil || intp.stack == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( fonts=%d lh=%s px=%g", intp.stack.Len(), intp.stack.LineHeight, intp.px))
	if intp.lang != language.Und {
		sb.WriteString(fmt.Sprintf(" lang=%s", intp.lang))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single command with its arguments.
type Op struct {
	code int
	args []string
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	SAVE
	FONT
	SYSTEM
	REMOVE
	MOVE
	LANG
	ASCENT
	DESCENT
	LINEGAP
	SIZE
	SUGGEST
	LINEHEIGHT
	PX
	SHOW
	GUIDES
	CSS
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"load":    LOAD,
	"save":    SAVE,
	"font":    FONT,
	"system":  SYSTEM,
	"remove":  REMOVE,
	"move":    MOVE,
	"lang":    LANG,
	"ascent":  ASCENT,
	"descent": DESCENT,
	"linegap": LINEGAP,
	"size":    SIZE,
	"suggest": SUGGEST,
	"lh":      LINEHEIGHT,
	"px":      PX,
	"show":    SHOW,
	"guides":  GUIDES,
	"css":     CSS,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"save",
	"font",
	"system",
	"remove",
	"move",
	"lang",
	"ascent",
	"descent",
	"linegap",
	"size",
	"suggest",
	"lh",
	"px",
	"show",
	"guides",
	"css",
}

// mutating ops trigger a re-display of the stack
var mutating = map[int]bool{
	LOAD: true, FONT: true, SYSTEM: true, REMOVE: true, MOVE: true,
	ASCENT: true, DESCENT: true, LINEGAP: true, SIZE: true, SUGGEST: true,
	LINEHEIGHT: true,
}

var errUnknownCommand = errors.New("unknown command, type 'help'")

// parseCommand splits an input line into an op-code and arguments.
// Arguments are separated by blanks; family names containing blanks
// have to be quoted, e.g.
//
//	ascent "Times New Roman" 92%
func parseCommand(line string) (*Op, error) {
	words, err := splitArgs(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return &Op{code: NOOP}, nil
	}
	code, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownCommand, words[0])
	}
	op := &Op{code: code, args: words[1:]}
	tracer().Debugf("parsed command: %s %v", opNames[code], op.args)
	return op, nil
}

func splitArgs(line string) ([]string, error) {
	var words []string
	var sb strings.Builder
	inQuote, inWord := false, false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case (r == ' ' || r == '\t') && !inQuote:
			if inWord {
				words = append(words, sb.String())
				sb.Reset()
				inWord = false
			}
		default:
			sb.WriteRune(r)
			inWord = true
		}
	}
	if inQuote {
		return nil, errors.New("unbalanced quotes")
	}
	if inWord {
		words = append(words, sb.String())
	}
	return words, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:       quitOp,
	HELP:       helpOp,
	LOAD:       loadOp,
	SAVE:       saveOp,
	FONT:       fontOp,
	SYSTEM:     systemOp,
	REMOVE:     removeOp,
	MOVE:       moveOp,
	LANG:       langOp,
	ASCENT:     overrideOp,
	DESCENT:    overrideOp,
	LINEGAP:    overrideOp,
	SIZE:       overrideOp,
	SUGGEST:    suggestOp,
	LINEHEIGHT: lineHeightOp,
	PX:         pxOp,
	SHOW:       showOp,
	GUIDES:     guidesOp,
	CSS:        cssOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	if op.code == NOOP {
		return nil, false
	}
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	err, stop = f(intp, op)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if mutating[op.code] {
		intp.printStack()
	}
	return
}

func (op *Op) arg(inx int) string {
	if len(op.args) > inx {
		return op.args[inx]
	}
	return ""
}

func (op *Op) requireArgs(n int, usage string) error {
	if len(op.args) < n {
		return fmt.Errorf("usage: %s %s", opNames[op.code], usage)
	}
	return nil
}

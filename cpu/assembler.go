// Copyright 2026, SarahGreyWolf

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = func() map[string]string {
	m := map[string]string{"LINENO": "0"}
	maps.Copy(m, _cpu_defines)
	return m
}()

// Assembler is a single pass macro assembler for 6502 assembly.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Listing []Opcode // List of generated listing entries.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	origin    uint16 // Address of the first .org directive.
	originSet bool
	addr      uint16 // Current assembly address cursor.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// branchTargets are the mnemonics whose sole operand is a relative
// displacement.
var branchTargets = map[Mnemonic]bool{
	BPL: true, BMI: true, BVC: true, BVS: true,
	BCC: true, BCS: true, BNE: true, BEQ: true,
}

// valueOf returns the value of a simple numeric word: $ hex, % binary,
// 0x hex, or decimal, with an optional ~ inversion.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}

	var v64 uint64
	switch {
	case len(word) > 1 && word[0] == '$':
		v64, err = strconv.ParseUint(word[1:], 16, 16)
	case len(word) > 1 && word[0] == '%':
		v64, err = strconv.ParseUint(word[1:], 2, 16)
	default:
		v64, err = strconv.ParseUint(word, 0, 16)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	if invert {
		value = ^value
	}

	return
}

// symbolRe matches a bare identifier usable as a label or equate name.
var symbolRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// resolveValue resolves a term through the equates, then as a number.
// A term that is neither is reported as a label reference.
func (asm *Assembler) resolveValue(term string) (value uint16, label string, err error) {
	if equate, ok := asm.Equate[term]; ok {
		term = equate
	}

	value, err = asm.valueOf(term)
	if err == nil {
		return
	}

	if symbolRe.MatchString(term) {
		label = term
		err = nil
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value16, nerr := asm.valueOf(str)
		if nerr != nil {
			// Ignore non-numeric equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine parses a single line as a listing entry.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro expansion
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, macro.LineNo+n)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing the listing.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Listing = asm.Listing[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.origin = 0
	asm.originSet = false
	asm.addr = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		all_words := strings.Split(line, " ")

		var words []string
		for _, single := range all_words {
			if len(single) > 0 {
				words = append(words, single)
			}
		}

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Listing {
		op := &asm.Listing[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			return
		}

		if op.LinkMode == Relative {
			disp := int(target) - int(op.Addr) - 2
			if disp < -128 || disp > 127 {
				err = ErrBranchRange
				lineno, line = op.LineNo, strings.Join(op.Words, " ")
				return
			}
			op.Bytes[1] = uint8(int8(disp))
		} else {
			op.Bytes[1] = uint8(target)
			op.Bytes[2] = uint8(target >> 8)
		}
	}

	prog = &Program{
		Origin:  asm.origin,
		Opcodes: slices.Clone(asm.Listing),
	}

	return
}

// operand is the decoded form of an instruction's operand text.
type operand struct {
	mode  AddressMode
	value uint16
	label string
}

// parseOperand decodes the operand words of one instruction.
func (asm *Assembler) parseOperand(words []string) (opr operand, err error) {
	if len(words) == 0 {
		opr.mode = Implied
		return
	}

	// Indexed forms may be split around the comma; rejoin them.
	text := strings.Join(words, "")
	lower := strings.ToLower(text)

	resolve := func(term string) (err error) {
		opr.value, opr.label, err = asm.resolveValue(term)
		return
	}

	switch {
	case lower == "a":
		opr.mode = Accumulator
	case strings.HasPrefix(text, "#"):
		opr.mode = Immediate
		err = resolve(text[1:])
		if err == nil && opr.value > 0xFF {
			err = ErrParseValue(text)
		}
	case strings.HasPrefix(text, "(") && strings.HasSuffix(lower, ",x)"):
		opr.mode = IndirectX
		err = resolve(text[1 : len(text)-3])
	case strings.HasPrefix(text, "(") && strings.HasSuffix(lower, "),y"):
		opr.mode = IndirectY
		err = resolve(text[1 : len(text)-3])
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		opr.mode = Indirect
		err = resolve(text[1 : len(text)-1])
	case strings.HasSuffix(lower, ",x"):
		err = resolve(text[:len(text)-2])
		opr.mode = AbsoluteX
		if err == nil && opr.label == "" && opr.value <= 0xFF {
			opr.mode = ZeropageX
		}
	case strings.HasSuffix(lower, ",y"):
		err = resolve(text[:len(text)-2])
		opr.mode = AbsoluteY
		if err == nil && opr.label == "" && opr.value <= 0xFF {
			opr.mode = ZeropageY
		}
	default:
		err = resolve(text)
		opr.mode = Absolute
		if err == nil && opr.label == "" && opr.value <= 0xFF {
			opr.mode = Zeropage
		}
	}

	if err == nil && opr.label != "" {
		switch opr.mode {
		case Absolute, Indirect:
			// Linked after the label pass.
		default:
			err = ErrLabelOperand
		}
	}

	return
}

// encode emits the opcode byte and operand bytes for one instruction.
func (asm *Assembler) encode(inst Mnemonic, opr operand) (bytes []byte, err error) {
	mode := opr.mode

	if branchTargets[inst] {
		// Branch operands are absolute targets in source; the
		// displacement is computed at link time.
		if mode != Absolute && mode != Zeropage {
			err = ErrModeInvalid{Inst: inst, Mode: mode}
			return
		}
		mode = Relative
	}

	b, ok := variants[opcode{inst, mode}]
	if !ok && mode == Implied {
		// A bare shift operates on the accumulator.
		mode = Accumulator
		b, ok = variants[opcode{inst, mode}]
	}
	if !ok && mode == Zeropage {
		// No zeropage variant; promote to absolute.
		mode = Absolute
		b, ok = variants[opcode{inst, mode}]
	}
	if !ok && mode == ZeropageX {
		mode = AbsoluteX
		b, ok = variants[opcode{inst, mode}]
	}
	if !ok && mode == ZeropageY {
		mode = AbsoluteY
		b, ok = variants[opcode{inst, mode}]
	}
	if !ok {
		err = ErrModeInvalid{Inst: inst, Mode: mode}
		return
	}

	bytes = append(bytes, b)
	switch mode.OperandSize() {
	case 1:
		if mode == Relative {
			if opr.label == "" {
				disp := int(opr.value) - int(asm.addr) - 2
				if disp < -128 || disp > 127 {
					err = ErrBranchRange
					return
				}
				bytes = append(bytes, uint8(int8(disp)))
			} else {
				bytes = append(bytes, 0)
			}
		} else {
			bytes = append(bytes, uint8(opr.value))
		}
	case 2:
		bytes = append(bytes, uint8(opr.value), uint8(opr.value>>8))
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []byte
	var label string
	var linkMode AddressMode

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(bytes) == 0 {
			return
		}
		entry := Opcode{LineNo: lineno, Addr: asm.addr, Words: initial_words,
			Bytes: bytes, LinkLabel: label, LinkMode: linkMode}
		asm.Listing = append(asm.Listing, entry)
		asm.addr += uint16(len(bytes))
	}()

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOriginSyntax
			return
		}
		var value uint16
		var orgLabel string
		value, orgLabel, err = asm.resolveValue(words[1])
		if err != nil {
			return
		}
		if orgLabel != "" {
			err = ErrLabelOperand
			return
		}
		asm.addr = value
		if !asm.originSet {
			asm.origin = value
			asm.originSet = true
		}
		return
	case ".byte":
		if len(words) < 2 {
			err = ErrDataSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint16
			var dataLabel string
			value, dataLabel, err = asm.resolveValue(word)
			if err != nil {
				return
			}
			if dataLabel != "" {
				err = ErrLabelOperand
				return
			}
			if value > 0xFF {
				err = ErrParseValue(word)
				return
			}
			bytes = append(bytes, uint8(value))
		}
		return
	case ".word":
		if len(words) < 2 {
			err = ErrDataSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint16
			var dataLabel string
			value, dataLabel, err = asm.resolveValue(word)
			if err != nil {
				return
			}
			if dataLabel != "" {
				err = ErrLabelOperand
				return
			}
			bytes = append(bytes, uint8(value), uint8(value>>8))
		}
		return
	}

	inst, ok := mnemonics[strings.ToUpper(words[0])]
	if !ok {
		err = ErrMnemonicInvalid(words[0])
		return
	}

	opr, err := asm.parseOperand(words[1:])
	if err != nil {
		return
	}

	if branchTargets[inst] && opr.label != "" {
		linkMode = Relative
	} else if opr.label != "" {
		linkMode = opr.mode
	}
	label = opr.label

	bytes, err = asm.encode(inst, opr)

	return
}

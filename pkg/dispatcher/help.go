package dispatcher

import (
	"fmt"
	"strings"
)

const syntaxLine = "Syntax: <functionName> <arg1> <arg2> ... <argN>\n"

// Help describes every registered function and its fields, in registration
// and declaration order.
func (d *Dispatcher) Help() string {
	var b strings.Builder
	b.WriteString(syntaxLine)
	b.WriteString("Functions:\n")
	for _, name := range d.Names() {
		e, ok := d.Lookup(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s\t%s\n", e.Name, e.Description)
		for _, f := range e.Unit.Fields() {
			fmt.Fprintf(&b, "\t%s (%s)\t%s\n", f.Name(), f.Type(), f.Description())
		}
	}
	return b.String()
}

// FunctionHelp describes the fields of one function.
func (d *Dispatcher) FunctionHelp(name string) string {
	e, ok := d.Lookup(name)
	if !ok {
		return fmt.Sprintf("Function %s not found", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Function %s:\n", name)
	for _, f := range e.Unit.Fields() {
		fmt.Fprintf(&b, "    %s (%s)\t%s\n", f.Name(), f.Type(), f.Description())
	}
	return b.String()
}

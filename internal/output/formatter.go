package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintList(items any, columns []Column) error
	PrintMessage(msg string)
	PrintError(err error)
	PrintHint(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Truncation width (0 = no truncation)
}

// New creates a formatter for the specified mode writing to stdout/stderr.
// Mode resolution (auto vs TTY detection) happens before this call.
func New(mode string) Formatter {
	return NewWithWriters(mode, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter with explicit output streams
func NewWithWriters(mode string, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, errOut: errOut}
	case "compact":
		return &compactFormatter{out: out, errOut: errOut}
	case "table":
		return &tableFormatter{out: out, errOut: errOut, profile: termenv.ColorProfile()}
	default:
		return &compactFormatter{out: out, errOut: errOut}
	}
}

// NewJSON creates a JSON formatter with optional results-only mode
func NewJSON(resultsOnly bool) Formatter {
	return &jsonFormatter{out: os.Stdout, errOut: os.Stderr, resultsOnly: resultsOnly}
}

// jsonFormatter emits machine-readable JSON
type jsonFormatter struct {
	out         io.Writer
	errOut      io.Writer
	resultsOnly bool
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	if f.resultsOnly {
		return f.Print(items)
	}

	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	count := 0
	if v.Kind() == reflect.Slice {
		count = v.Len()
	}

	envelope := map[string]any{
		"data":  items,
		"count": count,
	}

	return f.Print(envelope)
}

func (f *jsonFormatter) PrintMessage(msg string) {
	enc := json.NewEncoder(f.out)
	enc.Encode(map[string]string{"message": msg})
}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	enc.Encode(map[string]string{"error": err.Error()})
}

func (f *jsonFormatter) PrintHint(msg string) {
	// Hints are human guidance; JSON consumers get the error object only
}

// compactFormatter emits tab-separated values for piping
type compactFormatter struct {
	out    io.Writer
	errOut io.Writer
}

func (f *compactFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(f.out, "%s\t%v\n", t.Field(i).Name, v.Field(i).Interface())
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *compactFormatter) PrintList(items any, columns []Column) error {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("PrintList requires a slice")
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintf(f.out, "%s\n", strings.Join(headers, "\t"))

	for i := 0; i < v.Len(); i++ {
		values := cellValues(v.Index(i), columns, false)
		fmt.Fprintf(f.out, "%s\n", strings.Join(values, "\t"))
	}

	return nil
}

func (f *compactFormatter) PrintMessage(msg string) {
	fmt.Fprintln(f.out, msg)
}

func (f *compactFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "error: %v\n", err)
}

func (f *compactFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "hint: %v\n", msg)
}

// tableFormatter emits styled aligned tables for interactive terminals
type tableFormatter struct {
	out     io.Writer
	errOut  io.Writer
	profile termenv.Profile
}

func (f *tableFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(f.out, "%s: %v\n",
				keyStyle.Render(t.Field(i).Name),
				v.Field(i).Interface(),
			)
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *tableFormatter) PrintList(items any, columns []Column) error {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("PrintList requires a slice")
	}

	rows := make([][]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		rows[i] = cellValues(v.Index(i), columns, true)
	}

	RenderTable(f.out, columns, rows)
	return nil
}

func (f *tableFormatter) PrintMessage(msg string) {
	fmt.Fprintln(f.out, msg)
}

func (f *tableFormatter) PrintError(err error) {
	errorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fmt.Fprintf(f.errOut, "%s\n", errorStyle.Render("error: "+err.Error()))
}

func (f *tableFormatter) PrintHint(msg string) {
	hintStyle := lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	fmt.Fprintf(f.errOut, "%s\n", hintStyle.Render("hint: "+msg))
}

// cellValues extracts column values from a struct or map element
func cellValues(item reflect.Value, columns []Column, truncate bool) []string {
	if item.Kind() == reflect.Ptr {
		item = item.Elem()
	}

	values := make([]string, len(columns))
	for i, col := range columns {
		var raw string
		switch item.Kind() {
		case reflect.Map:
			mapVal := item.MapIndex(reflect.ValueOf(col.Key))
			if mapVal.IsValid() {
				raw = fmt.Sprintf("%v", mapVal.Interface())
			}
		case reflect.Struct:
			field := item.FieldByName(col.Key)
			if field.IsValid() {
				raw = fmt.Sprintf("%v", field.Interface())
			}
		}
		if truncate && col.Width > 0 {
			raw = TruncateString(raw, col.Width)
		}
		values[i] = raw
	}
	return values
}

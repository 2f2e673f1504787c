// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"reflect"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"github.com/bureau-foundation/gearadmin/lib/codec"
	"github.com/bureau-foundation/gearadmin/lib/config"
)

// JSONOutput is an embeddable struct that adds --json output support to
// a command's parameter struct. Embedding it provides the --json flag
// (via struct tag processing in [BindFlags]) and the [EmitJSON] method
// for conditional JSON output.
//
//	type workersParams struct {
//	    cli.JSONOutput
//	    Function string `flag:"function" desc:"only workers registered for FUNCTION"`
//	}
//
//	// In Run:
//	if done, err := params.EmitJSON(os.Stdout, records); done {
//	    return err
//	}
//	// ... table formatting ...
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`

	// Color is one of the config color modes. Empty means auto.
	Color string `json:"-"`
}

// EmitJSON writes result as indented JSON to w if --json is set.
// Returns (true, nil) on success, (true, err) on write failure, or
// (false, nil) when --json is not set and the caller should proceed
// with text formatting.
//
// Nil slices are normalized to empty slices before serialization, so
// callers never need to guard against null JSON output.
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(w, normalizeNilSlice(result), j.Color)
}

// CBOROutput is the binary counterpart of [JSONOutput]: it adds --cbor,
// which writes the same values in Core Deterministic CBOR through
// [codec].
type CBOROutput struct {
	OutputCBOR bool `json:"-" flag:"cbor" desc:"output as CBOR (binary)"`
}

// EmitCBOR writes result as CBOR to w if --cbor is set, with the same
// return convention as [JSONOutput.EmitJSON].
func (c *CBOROutput) EmitCBOR(w io.Writer, result any) (bool, error) {
	if !c.OutputCBOR {
		return false, nil
	}
	if err := codec.NewEncoder(w).Encode(normalizeNilSlice(result)); err != nil {
		return true, Internal("encoding CBOR output: %w", err)
	}
	return true, nil
}

// WriteJSON marshals value as indented JSON and writes it to w. The
// output is syntax-highlighted when color is "always", or when it is
// "auto" (or empty) and w is a terminal.
func WriteJSON(w io.Writer, value any, color string) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return Internal("encoding JSON output: %w", err)
	}

	if shouldHighlight(w, color) {
		if err := quick.Highlight(w, buffer.String(), "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	if _, err := w.Write(buffer.Bytes()); err != nil {
		return Internal("writing JSON output: %w", err)
	}
	return nil
}

func shouldHighlight(w io.Writer, color string) bool {
	switch color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that serialization produces [] instead of null.
// Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}

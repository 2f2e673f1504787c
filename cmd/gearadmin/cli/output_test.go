// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/gearadmin/lib/codec"
	"github.com/bureau-foundation/gearadmin/lib/config"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestEmitJSON(t *testing.T) {
	output := JSONOutput{}
	var buffer bytes.Buffer
	if done, err := output.EmitJSON(&buffer, sample{Name: "x"}); done || err != nil {
		t.Fatalf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("wrote %q without --json", buffer.String())
	}

	output.OutputJSON = true
	done, err := output.EmitJSON(&buffer, sample{Name: "resize", Items: []string{"a"}})
	if !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v), want (true, nil)", done, err)
	}
	want := "{\n  \"name\": \"resize\",\n  \"items\": [\n    \"a\"\n  ]\n}\n"
	if buffer.String() != want {
		t.Errorf("EmitJSON wrote %q, want %q", buffer.String(), want)
	}
}

func TestEmitJSON_NilSlice(t *testing.T) {
	output := JSONOutput{OutputJSON: true}
	var buffer bytes.Buffer
	var nothing []sample
	if _, err := output.EmitJSON(&buffer, nothing); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}

func TestWriteJSON_ColorAlways(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteJSON(&buffer, map[string]int{"total": 3}, config.ColorAlways); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buffer.String(), "\x1b[") {
		t.Errorf("forced color produced no escape sequences: %q", buffer.String())
	}

	buffer.Reset()
	if err := WriteJSON(&buffer, map[string]int{"total": 3}, config.ColorAuto); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buffer.String(), "\x1b[") {
		t.Errorf("non-terminal writer got escape sequences: %q", buffer.String())
	}
}

func TestEmitCBOR(t *testing.T) {
	output := CBOROutput{OutputCBOR: true}
	var buffer bytes.Buffer
	done, err := output.EmitCBOR(&buffer, sample{Name: "resize", Items: []string{"a", "b"}})
	if !done || err != nil {
		t.Fatalf("EmitCBOR = (%v, %v), want (true, nil)", done, err)
	}

	var decoded sample
	if err := codec.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != "resize" || len(decoded.Items) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

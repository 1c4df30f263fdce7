package sdf

import (
	"strings"
	"testing"
)

func TestModelConfig_EncodeParse(t *testing.T) {
	mc := NewModelConfig("Bridge", Version15, "Box-girder bridge over the line course.")
	mc.Author = &Author{Name: "maintainers", Email: "maintainers@example.org"}

	data, err := mc.Encode()
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"<name>Bridge</name>", `<sdf version="1.5">model.sdf</sdf>`, "<email>maintainers@example.org</email>"} {
		if !strings.Contains(text, want) {
			t.Errorf("encoded manifest missing %q:\n%s", want, text)
		}
	}

	out, err := ParseModelConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != mc.Name || out.SDF != mc.SDF || out.Description != mc.Description {
		t.Errorf("round trip mismatch: %+v vs %+v", out, mc)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestModelConfigValidate_Failures(t *testing.T) {
	cases := []struct {
		name string
		mc   ModelConfig
	}{
		{"no name", ModelConfig{SDF: SDFRef{Version: Version15, File: "model.sdf"}}},
		{"no file", ModelConfig{Name: "m", SDF: SDFRef{Version: Version15}}},
		{"bad version", ModelConfig{Name: "m", SDF: SDFRef{Version: "2.0", File: "model.sdf"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.mc.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

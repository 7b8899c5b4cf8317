package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionArg(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    uint
		wantErr bool
	}{
		{name: "timestamp version", args: []string{"1775800200"}, want: 1775800200},
		{name: "missing", wantErr: true},
		{name: "negative", args: []string{"-1"}, wantErr: true},
		{name: "not a number", args: []string{"latest"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := versionArg(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("versionArg(%v) err=%v wantErr=%v", tt.args, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("versionArg(%v)=%d want=%d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if code := run([]string{"sideways"}); code != 2 {
		t.Fatalf("exit code=%d want=2", code)
	}
	if code := run(nil); code != 2 {
		t.Fatalf("exit code=%d want=2", code)
	}
}

func TestUsage_ListsCommands(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)
	for _, cmd := range []string{"up", "down [steps]", "goto <version>", "force <version>", "version"} {
		if !strings.Contains(buf.String(), cmd) {
			t.Fatalf("usage is missing %q:\n%s", cmd, buf.String())
		}
	}
}

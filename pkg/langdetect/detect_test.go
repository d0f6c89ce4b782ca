package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdblocks/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "shebang bash", code: "#!/bin/bash\necho hello", want: "bash"},
		{name: "shebang sh", code: "#!/bin/sh\necho hello", want: "bash"},
		{name: "shebang python", code: "#!/usr/bin/env python3\nprint('hello')", want: "python"},
		{name: "shebang wins over patterns", code: "#!/bin/bash\ndef foo():\n    pass", want: "bash"},
		{name: "go", code: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", want: "go"},
		{name: "python", code: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{name: "python import", code: "from os import path", want: "python"},
		{name: "javascript", code: "const x = () => { return 42; };\nconsole.log(x());", want: "javascript"},
		{name: "json", code: `{"key": "value", "number": 123}`, want: "json"},
		{name: "yaml", code: "key: value\nother: 123\nlist:\n  - item1\n  - item2", want: "yaml"},
		{name: "rust", code: "fn main() {\n    println!(\"Hello, world!\");\n}", want: "rust"},
		{name: "sql", code: "SELECT * FROM users WHERE id = 1;", want: "sql"},
		{name: "lowercase sql", code: "select id from t", want: "sql"},
		{name: "shell prompt", code: "$ go install ./...", want: "bash"},
		{
			name: "html",
			code: "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			want: "html",
		},
		{name: "dockerfile", code: "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", want: "dockerfile"},
		{name: "plain text", code: "just some text without any code patterns", want: langdetect.Unknown},
		{name: "empty", code: "", want: langdetect.Unknown},
		{name: "whitespace", code: " \n\t", want: langdetect.Unknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, langdetect.Detect(tc.code))
		})
	}
}

func BenchmarkDetect(b *testing.B) {
	code := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}"
	for range b.N {
		langdetect.Detect(code)
	}
}

package main

import (
	"embed"
	"strings"
	"testing"

	"github.com/cottand/sift/frontend"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/cottand/sift/frontend/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeds the test folder
//
//go:embed test
var testSet embed.FS

// expectation comments are of the form:
//
//	//sift:expect name : type
func extractExpectations(t *testing.T, src string) map[string]string {
	t.Helper()
	expected := map[string]string{}
	for _, line := range strings.Split(src, "\n") {
		trimmed, found := strings.CutPrefix(line, "//sift:expect ")
		if !found {
			continue
		}
		name, typeString, found := strings.Cut(trimmed, " : ")
		if !found {
			t.Fatalf("could not parse expectation comment: '%v'", line)
		}
		expected[strings.TrimSpace(name)] = strings.TrimSpace(typeString)
	}
	return expected
}

func TestRootEndToEnd(t *testing.T) {
	files, err := testSet.ReadDir("test")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".sift") {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			data, err := testSet.ReadFile("test/" + f.Name())
			require.NoError(t, err)
			src := string(data)
			expected := extractExpectations(t, src)
			require.NotEmpty(t, expected, "test file carries no expectations")

			result, diags := frontend.Check(src, universe.Default())
			if diags.HasErrors() {
				sb := &strings.Builder{}
				for _, d := range diags {
					sb.WriteString("\n  ")
					sb.WriteString(sifterr.Render(d))
				}
				t.Fatalf("errors found during checking:%s", sb.String())
			}

			for _, decl := range result.File.Declarations {
				want, ok := expected[decl.Name]
				if !ok {
					continue
				}
				require.NotNil(t, decl.InterfaceType(), "no type for '%s'", decl.Name)
				assert.Equal(t, want, decl.InterfaceType().String(), "unexpected type for '%s'", decl.Name)
				delete(expected, decl.Name)
			}
			assert.Empty(t, expected, "expectations referring to missing declarations")
		})
	}
}

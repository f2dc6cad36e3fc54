package suite

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewin-lang/brewin"
	"github.com/brewin-lang/brewin/cas"
	"github.com/brewin-lang/brewin/vm"
)

const tomlSuite = `
[suite]
version = 2

[cases.hello]
source = '''
func main() {
  print("hello");
}
'''
output = ["hello"]

[cases.echo]
source = '''
func main() {
  var x;
  x = inputi("num?");
  print(x + 1);
}
'''
input = ["41"]
output = ["num?", "42"]
property = "len(output) == 2 and error == None"

[cases.missing]
source = '''
func main() {
  print(y);
}
'''
error = "name"
property = "error == 'name'"

[cases.v1only]
version = 1
source = '''
func main() {
  print(1 + 2 * 3);
}
'''
output = ["7"]
`

const yamlSuite = `
suite:
  version: 4
cases:
  caught:
    source: |
      func main() {
        try {
          raise "oops";
        }
        catch "oops" {
          print("caught");
        }
      }
    output: ["caught"]
  div0:
    source: |
      func main() {
        print(1 / 0);
      }
    error: FaultError
`

func loadString(t *testing.T, src string, format Format) *Suite {
	t.Helper()
	s, err := parseSuite(strings.NewReader(src), format)
	require.NoError(t, err)
	return s
}

func TestParseSuite(t *testing.T) {
	s := loadString(t, tomlSuite, TOML)
	assert.Equal(t, 2, s.Suite.Version)
	assert.Equal(t, []string{"echo", "hello", "missing", "v1only"}, s.CaseNames())
	assert.Equal(t, []string{"41"}, s.Cases["echo"].Input)
	assert.Nil(t, s.Cases["missing"].Output)

	v, err := s.version(ptr(s.Cases["v1only"]))
	require.NoError(t, err)
	assert.Equal(t, vm.V1, v)
	v, err = s.version(ptr(s.Cases["hello"]))
	require.NoError(t, err)
	assert.Equal(t, vm.V2, v)

	y := loadString(t, yamlSuite, YAML)
	assert.Equal(t, 4, y.Suite.Version)
	assert.Equal(t, []string{"caught", "div0"}, y.CaseNames())
	assert.Equal(t, "FaultError", y.Cases["div0"].Error)
}

func ptr(c Case) *Case { return &c }

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, YAML, FormatForPath("a/b.yaml"))
	assert.Equal(t, YAML, FormatForPath("b.YML"))
	assert.Equal(t, TOML, FormatForPath("b.toml"))
}

func TestRunCase(t *testing.T) {
	loader := &brewin.Loader{}
	s := loadString(t, tomlSuite, TOML)
	for _, name := range s.CaseNames() {
		t.Run(name, func(t *testing.T) {
			res := RunCase(loader, s, name)
			assert.True(t, res.Passed(), "%v", res.Failures)
		})
	}

	y := loadString(t, yamlSuite, YAML)
	for _, name := range y.CaseNames() {
		res := RunCase(loader, y, name)
		assert.True(t, res.Passed(), "%s: %v", name, res.Failures)
		assert.Equal(t, vm.V4, res.Version)
	}
}

func TestRunCase_Failures(t *testing.T) {
	s := &Suite{Cases: map[string]Case{
		"wrong_output": {
			Source: `func main() { print(1); }`,
			Output: []string{"2"},
		},
		"unexpected_error": {
			Source: `func main() { print(x); }`,
		},
		"missing_error": {
			Source: `func main() { print(1); }`,
			Error:  "type",
		},
		"wrong_error": {
			Source: `func main() { print(x); }`,
			Error:  "type",
		},
		"false_property": {
			Source:   `func main() { print(1); }`,
			Property: "len(output) == 3",
		},
		"bad_property": {
			Source:   `func main() { print(1); }`,
			Property: "output +",
		},
		"no_program": {},
		"syntax": {
			Source: `func main( {`,
		},
	}}
	loader := &brewin.Loader{}
	for _, name := range s.CaseNames() {
		t.Run(name, func(t *testing.T) {
			res := RunCase(loader, s, name)
			assert.False(t, res.Passed())
			require.NotEmpty(t, res.Failures)
		})
	}
}

func TestRunCase_SyntaxExpected(t *testing.T) {
	s := &Suite{Cases: map[string]Case{
		"syntax": {Source: `func main( {`, Error: "syntax"},
	}}
	res := RunCase(&brewin.Loader{}, s, "syntax")
	assert.True(t, res.Passed(), "%v", res.Failures)
}

func TestEvalProperty(t *testing.T) {
	ok, err := evalProperty("output[0] == 'a' and error == None", []string{"a"}, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = evalProperty("len(output)", []string{"a"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not bool")
}

func TestLoadSuiteFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "programs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "programs", "p.br"),
		[]byte("func main() {\n  print(\"from file\");\n}\n"), 0o644))
	suitePath := filepath.Join(dir, "files.toml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
[suite]
dir = "programs"

[cases.p]
file = "p.br"
output = ["from file"]
`), 0o644))

	s, err := LoadSuiteFromFile(suitePath)
	require.NoError(t, err)
	assert.Equal(t, "files", s.Name())
	assert.Equal(t, filepath.Join(dir, "programs"), s.Suite.Dir)

	res := RunCase(&brewin.Loader{}, s, "p")
	assert.True(t, res.Passed(), "%v", res.Failures)
}

func TestRunner(t *testing.T) {
	pc := cas.NewParseCache(cas.NewMemoryCAS())
	r := &Runner{
		Suites: []*Suite{loadString(t, tomlSuite, TOML), loadString(t, yamlSuite, YAML)},
		Jobs:   2,
		Loader: &brewin.Loader{Cache: pc},
	}
	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.Results, 6)
	assert.True(t, rep.OK())
	assert.Equal(t, 6, rep.Passed())

	// second run is served from the cache
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	hits, _ := pc.Stats()
	assert.Equal(t, int64(6), hits)

	var progress bytes.Buffer
	r.Reporter = &ColorReporter{Writer: &progress}
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(progress.String(), "."))

	var buf bytes.Buffer
	FormatReport(&buf, rep, true)
	assert.Contains(t, buf.String(), "PASS")
	assert.Contains(t, buf.String(), "6 passed, 0 failed")
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Suites: []*Suite{loadString(t, tomlSuite, TOML)}}
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatReport_Failure(t *testing.T) {
	rep := &Report{Results: []*Result{
		{Suite: "s", Name: "bad", Version: vm.V2, Output: []string{"x"}, Failures: []string{"output mismatch"}},
	}}
	var buf bytes.Buffer
	FormatReport(&buf, rep, true)
	out := buf.String()
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "s/bad")
	assert.Contains(t, out, "output mismatch")
	assert.Contains(t, out, "0 passed, 1 failed")
}

// SPDX-License-Identifier: MPL-2.0

package shell_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/oschwald/travis-build/internal/shell"
)

// body strips the preamble from a compiled script.
func body(t *testing.T, script string) string {
	t.Helper()
	prefix := shell.Preamble() + "\n"
	if !strings.HasPrefix(script, prefix) {
		t.Fatalf("script does not start with preamble:\n%s", script)
	}
	return strings.TrimPrefix(script, prefix)
}

func compile(t *testing.T, fn func(sh *shell.Builder)) string {
	t.Helper()
	sh := shell.NewBuilder()
	fn(sh)
	return body(t, sh.Script())
}

func TestBuilder_CmdPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []shell.Option
		want string
	}{
		{
			name: "defaults",
			want: `echo "\$ npm test"
travis_time_start
npm test
travis_time_finish
travis_assert $?
`,
		},
		{
			name: "no echo no timing",
			opts: []shell.Option{shell.WithEcho(false), shell.WithTiming(false)},
			want: "npm test\ntravis_assert $?\n",
		},
		{
			name: "assert disabled",
			opts: []shell.Option{shell.WithAssert(false), shell.WithEcho(false), shell.WithTiming(false)},
			want: "npm test\n",
		},
		{
			name: "fold wraps retry wraps assert",
			opts: []shell.Option{shell.WithRetry(true), shell.WithFold("install"), shell.WithTiming(false)},
			want: `travis_fold begin install
echo "\$ npm test"
travis_retry npm test
travis_assert $?
travis_fold end install
`,
		},
		{
			name: "retry without assert",
			opts: []shell.Option{shell.WithRetry(true), shell.WithAssert(false), shell.WithEcho(false), shell.WithTiming(false)},
			want: "travis_retry npm test\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := compile(t, func(sh *shell.Builder) { sh.Cmd("npm test", tt.opts...) })
			if got != tt.want {
				t.Errorf("Cmd() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestBuilder_EchoCommandEscapesOwnSyntax(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) {
		sh.Cmd(`echo "$HOME" `+"`pwd`", shell.WithTiming(false), shell.WithAssert(false))
	})
	want := `echo "\$ echo \"\$HOME\" ` + "\\`pwd\\`" + `"` + "\n" + `echo "$HOME" ` + "`pwd`\n"
	if got != want {
		t.Errorf("Cmd() =\n%s\nwant\n%s", got, want)
	}
	if err := shell.Validate(got); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestBuilder_Export(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) {
		sh.Export("", "ignored")
		sh.Export("TRAVIS_NODE_VERSION", "6", shell.WithEcho(false))
		sh.Export("PATH", "./bin:$PATH")
	})
	want := `export TRAVIS_NODE_VERSION=6
echo "\$ export PATH=./bin:\$PATH"
export PATH=./bin:$PATH
`
	if got != want {
		t.Errorf("Export() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuilder_EchoColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		color shell.Color
		want  string
	}{
		{name: "red", color: shell.ColorRed, want: `echo -e "${ANSI_RED}hello${ANSI_RESET}"`},
		{name: "yellow", color: shell.ColorYellow, want: `echo -e "${ANSI_YELLOW}hello${ANSI_RESET}"`},
		{name: "none", color: shell.ColorNone, want: `echo -e "hello"`},
		{name: "unknown is uncolored", color: shell.Color("purple"), want: `echo -e "hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := compile(t, func(sh *shell.Builder) { sh.Echo("hello", shell.WithColor(tt.color)) })
			if got != tt.want+"\n" {
				t.Errorf("Echo() = %q, want %q", got, tt.want+"\n")
			}
		})
	}
}

func TestColor_Validate(t *testing.T) {
	t.Parallel()

	for _, c := range []shell.Color{shell.ColorNone, shell.ColorRed, shell.ColorGreen, shell.ColorYellow, shell.ColorBlue} {
		if err := c.Validate(); err != nil {
			t.Errorf("Color(%q).Validate() = %v, want nil", c, err)
		}
	}
	err := shell.Color("purple").Validate()
	if !errors.Is(err, shell.ErrInvalidColor) {
		t.Errorf("Color(purple).Validate() = %v, want ErrInvalidColor", err)
	}
}

func TestBuilder_IfElseNesting(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) {
		sh.If("-f package.json", func() {
			sh.If("-f yarn.lock", func() {
				sh.Raw("yarn")
			})
			sh.Else(func() {
				sh.Raw("npm install")
			})
		})
		sh.Else(func() {
			sh.Fold("fallback", func() {
				sh.Raw("make test")
			})
		})
	})
	want := `if [[ -f package.json ]]; then
  if [[ -f yarn.lock ]]; then
    yarn
  else
    npm install
  fi
else
  travis_fold begin fallback
  make test
  travis_fold end fallback
fi
`
	if got != want {
		t.Errorf("nested If/Else =\n%s\nwant\n%s", got, want)
	}
}

func TestBuilder_EmptyBlocks(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) {
		sh.Fold("empty", nil)
		sh.If("-f x", func() {})
		sh.Else(nil)
	})
	want := `travis_fold begin empty
travis_fold end empty
if [[ -f x ]]; then
  :
else
  :
fi
`
	if got != want {
		t.Errorf("empty blocks =\n%s\nwant\n%s", got, want)
	}
	if err := shell.Validate(got); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestBuilder_Depth(t *testing.T) {
	t.Parallel()

	sh := shell.NewBuilder()
	var inner int
	sh.If("-f a", func() {
		sh.Fold("b", func() {
			inner = sh.Depth()
		})
	})
	if inner != 2 {
		t.Errorf("Depth() inside If/Fold = %d, want 2", inner)
	}
	if d := sh.Depth(); d != 0 {
		t.Errorf("Depth() after blocks = %d, want 0", d)
	}
}

// TestBuilder_RandomNestingBalanced builds random trees of If/Else/Fold blocks and
// checks that the output brackets match the source nesting.
func TestBuilder_RandomNestingBalanced(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 50 {
		sh := shell.NewBuilder()
		opened := 0
		var build func(depth int)
		build = func(depth int) {
			n := rng.IntN(4)
			for range n {
				switch k := rng.IntN(4); {
				case k == 0 || depth >= 4:
					sh.Cmd("true", shell.WithEcho(false))
				case k == 1:
					opened++
					sh.If("-n x", func() { build(depth + 1) })
					if rng.IntN(2) == 0 {
						sh.Else(func() { build(depth + 1) })
					}
				default:
					opened++
					sh.Fold("f", func() { build(depth + 1) })
				}
			}
		}
		build(0)
		script := sh.Script()

		if err := shell.Validate(script); err != nil {
			t.Fatalf("iteration %d: Validate() = %v\n%s", i, err, script)
		}
		var stack []string
		closed := 0
		for _, l := range strings.Split(body(t, script), "\n") {
			l = strings.TrimSpace(l)
			switch {
			case strings.HasPrefix(l, "if [["):
				stack = append(stack, "if")
			case l == "fi":
				if len(stack) == 0 || stack[len(stack)-1] != "if" {
					t.Fatalf("iteration %d: fi closes %v", i, stack)
				}
				stack = stack[:len(stack)-1]
				closed++
			case strings.HasPrefix(l, "travis_fold begin"):
				stack = append(stack, "fold")
			case strings.HasPrefix(l, "travis_fold end"):
				if len(stack) == 0 || stack[len(stack)-1] != "fold" {
					t.Fatalf("iteration %d: fold end closes %v", i, stack)
				}
				stack = stack[:len(stack)-1]
				closed++
			}
		}
		if len(stack) != 0 {
			t.Errorf("iteration %d: unclosed blocks %v", i, stack)
		}
		if closed != opened {
			t.Errorf("iteration %d: closed %d blocks, opened %d", i, closed, opened)
		}
	}
}

func TestBuilder_PrependPath(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) { sh.PrependPath("./node_modules/.bin") })
	want := `if [[ $(echo :$PATH: | grep -v :./node_modules/.bin:) ]]; then
  echo "\$ export PATH=./node_modules/.bin:\$PATH"
  export PATH=./node_modules/.bin:$PATH
fi
`
	if got != want {
		t.Errorf("PrependPath() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuilder_Chdir(t *testing.T) {
	t.Parallel()

	got := compile(t, func(sh *shell.Builder) { sh.Chdir("$HOME/build") })
	want := `mkdir -p $HOME/build
echo "\$ cd \$HOME/build"
cd $HOME/build
travis_assert $?
`
	if got != want {
		t.Errorf("Chdir() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuilder_Misuse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(sh *shell.Builder)
	}{
		{name: "else without if", fn: func(sh *shell.Builder) { sh.Else(nil) }},
		{name: "else after other directive", fn: func(sh *shell.Builder) {
			sh.If("-f a", nil)
			sh.Cmd("true")
			sh.Else(nil)
		}},
		{name: "second else", fn: func(sh *shell.Builder) {
			sh.If("-f a", nil)
			sh.Else(nil)
			sh.Else(nil)
		}},
		{name: "else at other depth", fn: func(sh *shell.Builder) {
			sh.If("-f a", func() { sh.Else(nil) })
		}},
		{name: "empty condition", fn: func(sh *shell.Builder) { sh.If("  ", nil) }},
		{name: "invalid fold name", fn: func(sh *shell.Builder) { sh.Fold("has space", nil) }},
		{name: "invalid export name", fn: func(sh *shell.Builder) { sh.Export("A-B", "1") }},
		{name: "script inside block", fn: func(sh *shell.Builder) {
			sh.If("-f a", func() { sh.Script() })
		}},
		{name: "append after script", fn: func(sh *shell.Builder) {
			sh.Script()
			sh.Cmd("true")
		}},
		{name: "script twice", fn: func(sh *shell.Builder) {
			sh.Script()
			sh.Script()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, shell.ErrMisuse) {
					t.Errorf("recovered %v, want *MisuseError", r)
				}
			}()
			tt.fn(shell.NewBuilder())
		})
	}
}

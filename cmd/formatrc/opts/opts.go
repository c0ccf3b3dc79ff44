package opts

import (
	"io"
	"os"

	"github.com/walteh/formatrc/pkg/config"
	"github.com/walteh/formatrc/pkg/counter"
	"github.com/walteh/formatrc/pkg/ignore"
	"github.com/walteh/formatrc/pkg/log"
	"github.com/walteh/formatrc/pkg/status"
	"golang.org/x/term"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Dir        string
	Resolver   *ignore.Resolver
	Counter    *counter.Counter
	Logger     *log.Logger
	Stdout     io.Writer
	NoProgress bool
}

// 📊 Progress picks a bar for terminals and plain lines for everything else
func (o *RootOpts) Progress() status.Sink {
	if !o.NoProgress && isTerminal(o.Stdout) {
		return status.NewBar(o.Stdout)
	}
	return status.NewLines(o.Stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

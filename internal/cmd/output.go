package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/Cyclone1070/fglob"
)

// useColor resolves the --color setting against the output writer.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && !color.NoColor && isatty.IsTerminal(f.Fd())
}

type printer struct {
	w    io.Writer
	json *json.Encoder
	dir  *color.Color
	link *color.Color
}

func newPrinter(w io.Writer, asJSON, colored bool) *printer {
	p := &printer{
		w:    w,
		dir:  color.New(color.FgBlue, color.Bold),
		link: color.New(color.FgCyan),
	}
	if asJSON {
		p.json = json.NewEncoder(w)
	}
	if colored {
		p.dir.EnableColor()
		p.link.EnableColor()
	} else {
		p.dir.DisableColor()
		p.link.DisableColor()
	}
	return p
}

type statsJSON struct {
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"modTime"`
}

type entryJSON struct {
	Path           string     `json:"path"`
	Name           string     `json:"name"`
	IsFile         bool       `json:"isFile"`
	IsDirectory    bool       `json:"isDirectory"`
	IsSymbolicLink bool       `json:"isSymbolicLink"`
	Stats          *statsJSON `json:"stats,omitempty"`
}

type taskJSON struct {
	Base     string   `json:"base"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Dynamic  bool     `json:"dynamic"`
}

func (p *printer) entry(e *fglob.Entry) error {
	if p.json != nil {
		out := entryJSON{
			Path:           e.Path,
			Name:           e.Dirent.Name,
			IsFile:         e.Dirent.IsFile,
			IsDirectory:    e.Dirent.IsDirectory,
			IsSymbolicLink: e.Dirent.IsSymbolicLink,
		}
		if e.Stats != nil {
			out.Stats = &statsJSON{
				Size:    e.Stats.Size(),
				Mode:    e.Stats.Mode().String(),
				ModTime: e.Stats.ModTime().UTC(),
			}
		}
		return p.json.Encode(out)
	}

	var err error
	switch {
	case e.Dirent.IsSymbolicLink:
		_, err = p.link.Fprintln(p.w, e.Path)
	case e.Dirent.IsDirectory:
		_, err = p.dir.Fprintln(p.w, e.Path)
	default:
		_, err = fmt.Fprintln(p.w, e.Path)
	}
	return err
}

func (p *printer) tasks(tasks []fglob.Task) error {
	enc := p.json
	if enc == nil {
		enc = json.NewEncoder(p.w)
	}
	for _, t := range tasks {
		if err := enc.Encode(taskJSON{Base: t.Base, Positive: t.Positive, Negative: t.Negative, Dynamic: t.Dynamic}); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/paged"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("pkt.systems/paged")
}

func main() {
	var (
		outPath      string
		pageWidth    float64
		pageHeight   float64
		fontFamily   string
		fontSize     float64
		textColor    string
		markerSuffix string
		noCompress   bool
	)

	defaults := paged.DefaultConfig()
	flags := pflag.NewFlagSet("paged", pflag.ExitOnError)
	flags.StringVarP(&outPath, "output", "o", "", "Output PDF file instead of stdout")
	flags.Float64Var(&pageWidth, "page-width", defaults.PageWidth, "Default page width in points")
	flags.Float64Var(&pageHeight, "page-height", defaults.PageHeight, "Default page height in points")
	flags.StringVar(&fontFamily, "font", defaults.FontFamily, "Default font family")
	flags.Float64Var(&fontSize, "font-size", defaults.FontSize, "Default font size in points")
	flags.StringVar(&textColor, "text-color", "", "Default text color (hex, e.g. #333333)")
	flags.StringVar(&markerSuffix, "marker-suffix", defaults.MarkerSuffix, "Default list marker suffix (tab|space|none|literal)")
	flags.BoolVar(&noCompress, "no-compress", false, "Disable content stream compression")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: paged [flags] [layout.json]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, the layout document is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg := paged.Config{
		PageWidth:    pageWidth,
		PageHeight:   pageHeight,
		FontFamily:   fontFamily,
		FontSize:     fontSize,
		MarkerSuffix: markerSuffix,
		NoCompress:   noCompress,
	}
	if textColor != "" {
		col, err := paged.ParseColor(textColor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --text-color %q: %v\n", textColor, err)
			os.Exit(2)
		}
		cfg.TextColor = col
	}

	args := flags.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "expected at most one layout document")
		os.Exit(2)
	}

	if len(args) == 1 && outPath != "" && isLocalFile(args[0]) {
		if err := paged.RenderFileConfig(normalizePath(args[0]), normalizePath(outPath), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
		return
	}

	reader, closer, err := openInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if isTerminal(writer) {
		fmt.Fprintln(os.Stderr, "refusing to write PDF to terminal; use -o/--output")
		os.Exit(2)
	}

	if err := paged.Render(paged.RenderRequest{
		Reader: reader,
		Writer: writer,
		Config: cfg,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func openInput(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	raw := strings.TrimSpace(args[0])
	if raw == "" {
		return nil, nil, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return openURL(raw)
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return openFile(path)
		}
	}
	return openFile(raw)
}

func isLocalFile(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err != nil || u.Scheme == ""
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	lib "github.com/awused/backgroundchanger/lib"
	"gopkg.in/yaml.v3"
)

func TestSplitSilentArgs(t *testing.T) {
	cases := []struct {
		in    []string
		want  []string
		quiet bool
	}{
		{[]string{"bc", "a.png"}, []string{"bc", "a.png"}, false},
		{[]string{"bc", "a.png", "1", "--silent"}, []string{"bc", "a.png", "1"}, true},
		{[]string{"bc", "--hide", "a.png"}, []string{"bc", "a.png"}, true},
		{[]string{"bc", "a.png", "-s", "1"}, []string{"bc", "a.png", "1"}, true},
		// The program name is never a flag
		{[]string{"-s"}, []string{"-s"}, false},
	}

	for _, c := range cases {
		got, quiet := splitSilentArgs(c.in)
		if !reflect.DeepEqual(got, c.want) || quiet != c.quiet {
			t.Fatalf("%v: expected %v %v, got %v %v", c.in, c.want, c.quiet, got, quiet)
		}
	}
}

func TestParseMonitorIndex(t *testing.T) {
	if i, err := parseMonitorIndex("2"); err != nil || i != 2 {
		t.Fatalf("expected 2, got %d %v", i, err)
	}
	if _, err := parseMonitorIndex("two"); err == nil {
		t.Fatalf("expected error for a non-numeric index")
	}
}

func TestMonitorListingYAML(t *testing.T) {
	l, err := newMonitorListing([]lib.MonitorRect{
		{X: 0, Y: 0, Width: 1920, Height: 1080, Primary: true},
		{X: 1920, Y: 0, Width: 1080, Height: 1920},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Monitors []struct {
			Index   int  `yaml:"index"`
			X       int  `yaml:"x"`
			Width   int  `yaml:"width"`
			Primary bool `yaml:"primary"`
		} `yaml:"monitors"`
		Combined struct {
			MaxX int `yaml:"maxX"`
			MaxY int `yaml:"maxY"`
		} `yaml:"combined"`
	}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decoded.Monitors) != 2 || decoded.Monitors[1].Index != 1 || decoded.Monitors[1].X != 1920 {
		t.Fatalf("unexpected monitors in\n%s", data)
	}
	if !decoded.Monitors[0].Primary || decoded.Monitors[1].Primary {
		t.Fatalf("unexpected primary flags in\n%s", data)
	}
	if decoded.Combined.MaxX != 3000 || decoded.Combined.MaxY != 1920 {
		t.Fatalf("unexpected combined bounds in\n%s", data)
	}
}

func TestMonitorListingEmpty(t *testing.T) {
	if _, err := newMonitorListing(nil); !errors.Is(err, lib.ErrNoMonitors) {
		t.Fatalf("expected ErrNoMonitors, got %v", err)
	}
}

func TestPreviewCanvas(t *testing.T) {
	var buf bytes.Buffer
	out = &lib.Output{W: &buf}
	defer func() { out = lib.NewOutput(false) }()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.Close()

	monitors := []lib.MonitorRect{
		{X: 0, Y: 0, Width: 64, Height: 36, Primary: true},
		{X: 64, Y: 0, Width: 36, Height: 64},
	}

	outFile := filepath.Join(dir, "previews", "p.bmp")
	if err := previewCanvas(src, monitors, 1, outFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(outFile); err != nil {
		t.Fatalf("expected preview file: %v", err)
	}

	s := buf.String()
	// 8x6 into 36x64 is 36x27 at (0, 18) on the second monitor
	for _, want := range []string{
		"Combined wallpaper: 100x64",
		"Image drawn on monitor 1 at (64, 18) with size 36x27",
		"Monitor 0 filled with black background",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %q in output:\n%s", want, s)
		}
	}

	err = previewCanvas(src, monitors, 3, filepath.Join(dir, "never.bmp"))
	if !errors.Is(err, lib.ErrMonitorIndexOutOfRange) {
		t.Fatalf("expected ErrMonitorIndexOutOfRange, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "never.bmp")); !os.IsNotExist(err) {
		t.Fatalf("expected no preview for an invalid index")
	}
}

func TestOutputSilent(t *testing.T) {
	var buf bytes.Buffer
	o := &lib.Output{W: &buf, Silent: true}
	o.Printf("Error: %v\n", errors.New("boom"))
	o.Println("hello")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	o.Silent = false
	o.Println("hello", 0)
	if buf.String() != "hello 0\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	var nilOut *lib.Output
	nilOut.Println("ignored")
}

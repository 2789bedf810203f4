// Package desktop carries out host actions: launching and closing
// applications, opening URLs, taking screenshots and describing the machine.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"talksy/pkg/failure"

	"github.com/sirupsen/logrus"
)

type IDesktop interface {
	OpenApplication(ctx context.Context, name string) (string, error)
	CloseApplication(ctx context.Context, name string) (string, error)
	OpenWebsite(ctx context.Context, url string) (string, error)
	OpenURL(ctx context.Context, rawURL string) error
	Screenshot(ctx context.Context) (string, error)
	SystemInfo(ctx context.Context) (string, error)
}

const shellMetacharacters = "&|<>^%\"`;$"

// Known application names per platform. Unknown names are launched as given.
var applications = map[string]map[string][]string{
	"windows": {
		"notepad":        {"notepad.exe"},
		"calculator":     {"calc.exe"},
		"chrome":         {"chrome.exe"},
		"firefox":        {"firefox.exe"},
		"word":           {"winword.exe"},
		"excel":          {"excel.exe"},
		"powerpoint":     {"powerpnt.exe"},
		"paint":          {"mspaint.exe"},
		"cmd":            {"cmd.exe"},
		"command prompt": {"cmd.exe"},
		"control panel":  {"control.exe"},
		"task manager":   {"taskmgr.exe"},
		"file explorer":  {"explorer.exe"},
		"camera":         {"microsoft.windows.camera:"},
		"discord":        {"discord:"},
	},
	"darwin": {
		"calculator":    {"open", "-a", "Calculator"},
		"chrome":        {"open", "-a", "Google Chrome"},
		"firefox":       {"open", "-a", "Firefox"},
		"terminal":      {"open", "-a", "Terminal"},
		"notes":         {"open", "-a", "Notes"},
		"discord":       {"open", "-a", "Discord"},
		"camera":        {"open", "-a", "Photo Booth"},
		"file explorer": {"open", "."},
	},
	"linux": {
		"calculator":    {"gnome-calculator"},
		"chrome":        {"google-chrome"},
		"firefox":       {"firefox"},
		"terminal":      {"gnome-terminal"},
		"cmd":           {"gnome-terminal"},
		"notepad":       {"gedit"},
		"discord":       {"discord"},
		"camera":        {"cheese"},
		"file explorer": {"xdg-open", "."},
	},
}

type Option func(*desktop)

func WithRunner(r Runner) Option {
	return func(d *desktop) { d.runner = r }
}

// WithPlatform overrides runtime.GOOS.
func WithPlatform(goos string) Option {
	return func(d *desktop) { d.goos = goos }
}

func WithScreenshotDir(dir string) Option {
	return func(d *desktop) { d.screenshotDir = dir }
}

func WithClock(now func() time.Time) Option {
	return func(d *desktop) { d.now = now }
}

func WithHost(h Host) Option {
	return func(d *desktop) { d.host = h }
}

type desktop struct {
	goos          string
	runner        Runner
	host          Host
	screenshotDir string
	selfPID       int32
	now           func() time.Time
	log           *logrus.Logger
}

func New(log *logrus.Logger, opts ...Option) IDesktop {
	d := &desktop{
		goos:    runtime.GOOS,
		runner:  NewExecRunner(),
		host:    NewHost(time.Second),
		selfPID: int32(os.Getpid()),
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.screenshotDir == "" {
		d.screenshotDir = defaultScreenshotDir()
	}
	return d
}

func (d *desktop) OpenApplication(ctx context.Context, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, "open_app", name, errors.New("empty application name"))
	}
	if strings.ContainsAny(name, shellMetacharacters) {
		return "", failure.NewWithSubject(failure.InvalidInput, "open_app", name, errors.New("application name contains shell metacharacters"))
	}

	command, known := applications[d.goos][name]
	if !known {
		command = []string{name}
	}
	if d.goos == "windows" {
		// ShellExecute resolves executables and protocol handlers without cmd.exe.
		command = append([]string{"rundll32", "url.dll,FileProtocolHandler"}, command...)
	}

	if err := d.runner.Start(command[0], command[1:]...); err != nil {
		d.log.WithFields(logrus.Fields{
			"application": name,
			"error":       err.Error(),
		}).Warn("Failed to open application")
		return "", failure.NewWithSubject(failure.Upstream, "open_app", name, err)
	}

	if known {
		return "Opening " + name, nil
	}
	return "Attempting to open " + name, nil
}

// CloseApplication terminates the first process whose name contains name.
func (d *desktop) CloseApplication(ctx context.Context, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, "close_app", name, errors.New("empty application name"))
	}

	procs, err := d.host.Processes(ctx)
	if err != nil {
		return "", failure.NewWithSubject(failure.Upstream, "close_app", name, err)
	}

	for _, p := range procs {
		if p.Pid() == d.selfPID {
			continue
		}
		procName, err := p.Name(ctx)
		if err != nil || !strings.Contains(strings.ToLower(procName), name) {
			continue
		}

		if err := p.Terminate(ctx); err != nil {
			d.log.WithFields(logrus.Fields{
				"application": name,
				"pid":         p.Pid(),
				"error":       err.Error(),
			}).Warn("Failed to close application")
			return "", failure.NewWithSubject(failure.Upstream, "close_app", name, err)
		}

		d.log.WithFields(logrus.Fields{
			"application": name,
			"process":     procName,
			"pid":         p.Pid(),
		}).Info("Closed application")
		return "Closed " + name, nil
	}

	return "", failure.NewWithSubject(failure.NotFound, "close_app", name, nil)
}

func (d *desktop) OpenWebsite(ctx context.Context, url string) (string, error) {
	url = NormalizeURL(url)
	if url == "" {
		return "", failure.NewWithSubject(failure.InvalidInput, "website", url, errors.New("empty url"))
	}
	if err := d.OpenURL(ctx, url); err != nil {
		return "", failure.NewWithSubject(failure.Upstream, "website", url, err)
	}
	return "Opening " + url, nil
}

// OpenURL opens rawURL in the default browser.
func (d *desktop) OpenURL(ctx context.Context, rawURL string) error {
	switch d.goos {
	case "windows":
		return d.runner.Start("rundll32", "url.dll,FileProtocolHandler", rawURL)
	case "darwin":
		return d.runner.Start("open", rawURL)
	default:
		return d.runner.Start("xdg-open", rawURL)
	}
}

// NormalizeURL prefixes https:// when rawURL has no scheme.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

func (d *desktop) Screenshot(ctx context.Context) (string, error) {
	if err := os.MkdirAll(d.screenshotDir, 0o755); err != nil {
		return "", failure.New(failure.Upstream, "screenshot", err)
	}
	path := filepath.Join(d.screenshotDir, fmt.Sprintf("screenshot_%s.png", d.now().Format("20060102_150405")))

	name, args, err := d.screenshotCommand(path)
	if err != nil {
		return "", failure.New(failure.Upstream, "screenshot", err)
	}

	if out, err := d.runner.Run(ctx, name, args...); err != nil {
		d.log.WithFields(logrus.Fields{
			"command": name,
			"output":  strings.TrimSpace(string(out)),
			"error":   err.Error(),
		}).Warn("Screenshot command failed")
		return "", failure.New(failure.Upstream, "screenshot", err)
	}
	return "Screenshot saved to " + path, nil
}

func (d *desktop) screenshotCommand(path string) (string, []string, error) {
	switch d.goos {
	case "darwin":
		return "screencapture", []string{"-x", path}, nil
	case "windows":
		script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms,System.Drawing;`+
			`$b=[System.Windows.Forms.Screen]::PrimaryScreen.Bounds;`+
			`$i=New-Object System.Drawing.Bitmap $b.Width,$b.Height;`+
			`$g=[System.Drawing.Graphics]::FromImage($i);`+
			`$g.CopyFromScreen($b.Location,[System.Drawing.Point]::Empty,$b.Size);`+
			`$i.Save('%s')`, path)
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	}

	candidates := [][]string{
		{"gnome-screenshot", "-f", path},
		{"scrot", path},
		{"import", "-window", "root", path},
	}
	for _, c := range candidates {
		if _, err := d.runner.LookPath(c[0]); err == nil {
			return c[0], c[1:], nil
		}
	}
	return "", nil, errors.New("no screenshot tool found")
}

func (d *desktop) SystemInfo(ctx context.Context) (string, error) {
	platform, err := d.host.Platform(ctx)
	if err != nil {
		d.warnStat("platform", err)
		platform = d.goos
	}
	processor, err := d.host.Processor(ctx)
	if err != nil {
		d.warnStat("processor", err)
		processor = runtime.GOARCH
	}

	lines := []string{
		"System: " + platform,
		"Processor: " + processor,
	}

	if ram, err := d.host.Memory(ctx); err != nil {
		d.warnStat("memory", err)
	} else {
		lines = append(lines, fmt.Sprintf("RAM: %sGB free of %sGB", gigabytes(ram.Free), gigabytes(ram.Total)))
	}

	if du, err := d.host.Disk(ctx, diskRoot(d.goos)); err != nil {
		d.warnStat("disk", err)
	} else {
		lines = append(lines, fmt.Sprintf("Disk: %sGB free of %sGB", gigabytes(du.Free), gigabytes(du.Total)))
	}

	if usage, err := d.host.CPUPercent(ctx); err != nil {
		d.warnStat("cpu", err)
	} else {
		lines = append(lines, fmt.Sprintf("CPU Usage: %s%%", strconv.FormatFloat(math.Round(usage*10)/10, 'f', -1, 64)))
	}

	return strings.Join(lines, "\n"), nil
}

func (d *desktop) warnStat(stat string, err error) {
	d.log.WithFields(logrus.Fields{
		"stat":  stat,
		"error": err.Error(),
	}).Warn("Failed to read system stat")
}

func diskRoot(goos string) string {
	if goos == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive + `\`
		}
		return `C:\`
	}
	return "/"
}

func gigabytes(b uint64) string {
	return strconv.FormatFloat(float64(b)/(1<<30), 'f', 2, 64)
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Desktop")
}

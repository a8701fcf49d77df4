// Package clipboardx moves subtree text between the outliner and the
// system clipboard. Copy and cut hand it whole subtrees serialized as
// indented note text; paste reads the same text back. Every available
// channel is tried so copy works on bare ssh sessions too.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// tool is an external clipboard helper found on PATH.
type tool struct {
	name string
	args []string
}

var copyTools = []tool{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var pasteTools = []tool{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

// lastCopied keeps cut/paste working within one session when no
// system clipboard is reachable at all.
var lastCopied string

// Write pushes text through every reachable channel and reports
// whether at least one accepted it. The in-process fallback always
// keeps a copy.
func Write(text string) bool {
	lastCopied = text

	ok := clipboard.WriteAll(text) == nil
	if writeViaTools(text) {
		ok = true
	}
	if writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read returns the system clipboard contents, falling back to the
// last text written in this session.
func Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	if text, ok := readViaTools(); ok && text != "" {
		return text
	}
	return lastCopied
}

func writeViaTools(text string) bool {
	ok := false
	for _, tl := range copyTools {
		if _, err := exec.LookPath(tl.name); err != nil {
			continue
		}
		cmd := exec.Command(tl.name, tl.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readViaTools() (string, bool) {
	for _, tl := range pasteTools {
		if _, err := exec.LookPath(tl.name); err != nil {
			continue
		}
		out, err := exec.Command(tl.name, tl.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

// writeOSC52 emits the terminal copy escape, which remote terminals
// relay to the local clipboard. Only useful on a real tty.
func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}

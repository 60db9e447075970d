package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/process"
)

const (
	editorKey = "e"
	openerKey = "o"
)

// defaultCommands returns the built-in editor and opener bindings that are
// available on this machine.
func defaultCommands() []config.Command {
	return defaultCommandsInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

func defaultCommandsInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) []config.Command {
	var cmds []config.Command
	if editor, ok := detectEditorCommandInternal(goos, getenv, lookPath); ok {
		cmds = append(cmds, config.Command{
			Key:      editorKey,
			Template: append(editor, process.Placeholder),
		})
	}
	if opener, ok := detectOpenerCommandInternal(goos, lookPath); ok {
		cmds = append(cmds, config.Command{
			Key:      openerKey,
			Template: append(opener, process.Placeholder),
			Spawn:    true,
		})
	}
	return cmds
}

func detectEditorCommandInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) (process.Template, bool) {
	candidates := []string{getenv("VISUAL"), getenv("EDITOR")}

	for _, candidate := range candidates {
		args := process.ParseTemplate(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{
			{"code", "--wait"},
			{"notepad++.exe"},
			{"notepad.exe"},
		}
	} else {
		defaults = [][]string{
			{"vim"},
			{"nano"},
			{"vi"},
		}
	}

	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return append(process.Template{resolved}, def[1:]...), true
		}
	}
	return nil, false
}

func detectOpenerCommandInternal(goos string, lookPath func(string) (string, error)) (process.Template, bool) {
	switch strings.ToLower(goos) {
	case "windows":
		return process.Template{"rundll32", "url.dll,FileProtocolHandler"}, true
	case "darwin":
		if resolved, ok := resolveExecutable("open", lookPath); ok {
			return process.Template{resolved}, true
		}
		return nil, false
	}

	for _, candidate := range []string{"xdg-open", "gio", "wslview"} {
		if resolved, ok := resolveExecutable(candidate, lookPath); ok {
			if candidate == "gio" {
				return process.Template{resolved, "open"}, true
			}
			return process.Template{resolved}, true
		}
	}
	return nil, false
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(cmd)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

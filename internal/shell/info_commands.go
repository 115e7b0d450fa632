package shell

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	kernelName    = "Linux"
	kernelRelease = "6.8.0-vsh"
	kernelVersion = "#1 SMP PREEMPT_DYNAMIC"
	machine       = "x86_64"
	osName        = "GNU/Linux"
)

type textArgs struct {
	Text string `mapstructure:"text"`
}

type flagArgs struct {
	Args []string `mapstructure:"args"`
}

func (d *Dispatcher) whoami(_ context.Context, _ State, _ noArgs) Result {
	return output(d.user)
}

func (d *Dispatcher) date(_ context.Context, _ State, _ noArgs) Result {
	return output(d.now().Format(time.UnixDate))
}

func (d *Dispatcher) echo(_ context.Context, _ State, args textArgs) Result {
	return output(args.Text)
}

func (d *Dispatcher) uname(_ context.Context, _ State, args flagArgs) Result {
	fields := map[rune]string{
		's': kernelName,
		'n': d.hostname,
		'r': kernelRelease,
		'v': kernelVersion,
		'm': machine,
		'o': osName,
	}
	order := []rune{'s', 'n', 'r', 'v', 'm', 'o'}

	selected := make(map[rune]bool)
	for _, arg := range args.Args {
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return failf("uname: extra operand '%s'", arg)
		}
		for _, c := range arg[1:] {
			if c == 'a' {
				for _, k := range order {
					selected[k] = true
				}
				continue
			}
			if _, ok := fields[c]; !ok {
				return failf("uname: invalid option -- '%c'", c)
			}
			selected[c] = true
		}
	}
	if len(selected) == 0 {
		return output(kernelName)
	}

	var parts []string
	for _, k := range order {
		if selected[k] {
			parts = append(parts, fields[k])
		}
	}
	return output(strings.Join(parts, " "))
}

func (d *Dispatcher) neofetch(_ context.Context, _ State, _ noArgs) Result {
	title := d.user + "@" + d.hostname
	info := []string{
		title,
		strings.Repeat("-", len(title)),
		"OS: Ubuntu 22.04.3 LTS " + machine,
		"Host: vsh virtual machine",
		"Kernel: " + kernelRelease,
		"Uptime: a few minutes",
		"Packages: 1337 (dpkg)",
		"Shell: bash 5.1.16",
		"Terminal: vsh",
		fmt.Sprintf("Commands: %d", len(d.commands)),
	}
	logo := []string{
		"        #####",
		"       #######",
		"       ##O#O##",
		"       #VVVVV#",
		"     ##  VVV  ##",
		"    #          ##",
		"   #            ##",
		"   #            ###",
		"  QQ#           ##Q",
		"QQQQQQ#       #QQQQQQ",
		"QQQQQQQ#     #QQQQQQQ",
		"  QQQQQ#######QQQQQ",
	}

	var b strings.Builder
	for i := 0; i < max(len(logo), len(info)); i++ {
		left, right := "", ""
		if i < len(logo) {
			left = logo[i]
		}
		if i < len(info) {
			right = info[i]
		}
		fmt.Fprintf(&b, "%-24s%s\n", left, right)
	}
	return output(strings.TrimRight(b.String(), "\n "))
}

func (d *Dispatcher) help(_ context.Context, _ State, _ noArgs) Result {
	var core, fun []Command
	for _, cmd := range d.commands {
		if cmd.Group() == GroupFun {
			fun = append(fun, cmd)
		} else {
			core = append(core, cmd)
		}
	}
	byName := func(list []Command) {
		sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	}
	byName(core)
	byName(fun)

	entries := make([]HelpEntry, 0, len(core)+len(d.extraHelp))
	for _, cmd := range core {
		entries = append(entries, HelpEntry{Usage: cmd.Usage(), Description: cmd.Description()})
	}
	entries = append(entries, d.extraHelp...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Usage < entries[j].Usage })

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Usage))
	}
	for _, cmd := range fun {
		width = max(width, len(cmd.Usage()))
	}

	var b strings.Builder
	b.WriteString("Locally supported commands:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, e.Usage, e.Description)
	}
	b.WriteString("\nGames (type to play):\n")
	for _, cmd := range fun {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, cmd.Usage(), cmd.Description())
	}
	b.WriteString("\nAnything else is answered by the AI fallback when it is configured.")
	return output(b.String())
}

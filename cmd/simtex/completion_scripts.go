package main

import (
	"fmt"
	"strings"
)

// bashScript renders the bash completion function. A first argument that is
// not a command is completed as a note, like the convert command.
func bashScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for simtex\n")
	b.WriteString("_simtex_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	var fallback *commandDef
	for i := range cmds {
		if cmds[i].TakesFiles {
			fallback = &cmds[i]
			continue
		}
		bashCommandCase(&b, cmds[i], cmds[i].Name)
	}
	if fallback != nil {
		bashCommandCase(&b, *fallback, "*")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _simtex_completions simtex\n")

	return b.String()
}

func bashCommandCase(b *strings.Builder, c commandDef, label string) {
	fmt.Fprintf(b, "        %s)\n", label)

	var valued []string
	for _, f := range c.Flags {
		if f.Type == flagBool {
			continue
		}
		names := "--" + f.Long
		if f.Short != "" {
			names += "|-" + f.Short
		}
		valued = append(valued, names)
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(b, "            if [[ ${prev} == @(%s) ]]; then COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") ); return 0; fi\n",
				names, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(b, "            if [[ ${prev} == @(%s) ]]; then COMPREPLY=( $(compgen -f -- \"${cur}\") ); return 0; fi\n", names)
		}
	}
	if len(valued) > 0 {
		fmt.Fprintf(b, "            if [[ ${prev} == @(%s) ]]; then return 0; fi\n", strings.Join(valued, "|"))
	}

	var words []string
	for _, f := range c.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}

	b.WriteString("            if [[ ${cur} == -* ]]; then\n")
	fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(words, " "))
	switch {
	case len(c.Args) > 0:
		b.WriteString("            elif [[ ${COMP_CWORD} -eq 2 ]]; then\n")
		fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(c.Args, " "))
	case c.TakesFiles:
		b.WriteString("            else\n")
		b.WriteString("                COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
	}
	b.WriteString("            fi\n")
	b.WriteString("            ;;\n")
}

// zshScript renders the zsh completion function.
func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef simtex\n\n")
	b.WriteString("_simtex() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	var fallback *commandDef
	for i := range cmds {
		if cmds[i].TakesFiles {
			fallback = &cmds[i]
		}
	}

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'simtex command' commands\n")
	if fallback != nil {
		fmt.Fprintf(&b, "        _files -g '%s'\n", zshGlob(fallback.FilePattern))
	}
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case ${words[2]} in\n")
	for _, c := range cmds {
		if c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            shift words\n")
		b.WriteString("            (( CURRENT-- ))\n")
		zshArguments(&b, c)
		b.WriteString("            ;;\n")
	}
	if fallback != nil {
		b.WriteString("        *)\n")
		b.WriteString("            if [[ ${words[2]} == convert ]]; then\n")
		b.WriteString("                shift words\n")
		b.WriteString("                (( CURRENT-- ))\n")
		b.WriteString("            fi\n")
		zshArguments(&b, *fallback)
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _simtex simtex\n")

	return b.String()
}

func zshArguments(b *strings.Builder, c commandDef) {
	b.WriteString("            _arguments -s")
	for _, f := range c.Flags {
		fmt.Fprintf(b, " \\\n                %s", zshFlagSpec(f))
	}
	switch {
	case len(c.Args) > 0:
		fmt.Fprintf(b, " \\\n                '1:argument:(%s)'", strings.Join(c.Args, " "))
	case c.TakesFiles:
		fmt.Fprintf(b, " \\\n                '*:note:_files -g \"%s\"'", zshGlob(c.FilePattern))
	}
	b.WriteString("\n")
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":" + f.Long + ":_files -g \"" + zshGlob(f.FileGlob) + "\""
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(glob string) string {
	exts := globExts(glob)
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// fishScript renders fish completions.
func fishScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for simtex\n\n")
	b.WriteString("function __fish_simtex_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_simtex_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c simtex -f -n __fish_simtex_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_simtex_using_command %s'", c.Name)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c simtex -f %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
		for _, f := range c.Flags {
			b.WriteString("complete -c simtex " + cond)
			if f.Short != "" {
				b.WriteString(" -s " + f.Short)
			}
			b.WriteString(" -l " + f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c simtex %s -F\n", cond)
		}
	}

	return b.String()
}

func fishEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

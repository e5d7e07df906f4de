// Copyright 2024 Kateryna Zdebska. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "analyzer"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load and validate a source file",
		Description: "Load an IPPcode24 source file from disk and run the" +
			" validator on it. On success the program is kept in memory for" +
			" the list, stats and xml commands.",
		Usage: "load <filename>",
		Data:  (*Host).cmdLoad,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "list",
		Brief: "List the loaded program",
		Description: "List the instructions of the loaded program with their" +
			" order numbers and classified operands. The number of lines" +
			" displayed is limited by the ListLines setting.",
		Usage: "list",
		Data:  (*Host).cmdList,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "stats",
		Brief: "Display code metrics",
		Description: "Display the statistics computed for the loaded program:" +
			" instruction, comment and label counts, jump classification, and" +
			" the most frequent opcode(s).",
		Usage: "stats",
		Data:  (*Host).cmdStats,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "xml",
		Brief: "Write the program as XML",
		Description: "Serialize the loaded program as an indented XML document." +
			" The document is written to the console, or to a file if a" +
			" filename is given.",
		Usage: "xml [<filename>]",
		Data:  (*Host).cmdXML,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "opcodes",
		Brief: "Inspect the opcode table",
		Description: "Display the operand shape of every opcode in the" +
			" instruction set, or of a single opcode selected by unique name" +
			" prefix.",
		Usage: "opcodes [<prefix>]",
		Data:  (*Host).cmdOpcodes,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})

	// Add command shortcuts.
	root.AddShortcut("?", "help")
	root.AddShortcut("ld", "load")
	root.AddShortcut("l", "list")
	root.AddShortcut("s", "stats")
	root.AddShortcut("x", "xml")
	root.AddShortcut("o", "opcodes")
	root.AddShortcut("q", "quit")

	cmds = root
}

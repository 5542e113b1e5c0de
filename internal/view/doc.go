// Package view builds pure view models from pipeline state.
//
// Nothing here touches a rendering surface or the network: the CLI and TUI
// layers translate these values into terminal output, which keeps the state
// machine and its transitions testable without any surface present.
package view

package testutils

import (
	tea "charm.land/bubbletea/v2"
)

// NewKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func NewKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// NewTextKeyPressMsg creates a KeyPressMsg for text input
func NewTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// NewCtrlKeyPressMsg creates a ctrl+<char> KeyPressMsg
func NewCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

// TypeText turns text into one KeyPressMsg per rune.
func TypeText(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			msgs = append(msgs, TestKeySpace)
			continue
		}
		msgs = append(msgs, NewTextKeyPressMsg(string(r)))
	}
	return msgs
}

var (
	TestKeyUp       = NewKeyPressMsg(tea.KeyUp)
	TestKeyDown     = NewKeyPressMsg(tea.KeyDown)
	TestKeyEnter    = NewKeyPressMsg(tea.KeyEnter)
	TestKeyTab      = NewKeyPressMsg(tea.KeyTab)
	TestKeyShiftTab = tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
	TestKeyEsc      = NewKeyPressMsg(tea.KeyEscape)
	TestKeySpace    = tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
	TestKeyPgUp     = NewKeyPressMsg(tea.KeyPgUp)
	TestKeyPgDown   = NewKeyPressMsg(tea.KeyPgDown)
)

var (
	TestKeyCtrlC = NewCtrlKeyPressMsg('c')
	TestKeyCtrlG = NewCtrlKeyPressMsg('g')
)

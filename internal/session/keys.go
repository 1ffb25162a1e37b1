package session

// Key is a terminal-independent key event. The picker maps raw terminal
// keys onto these.
type Key int

const (
	KeyNone              Key = iota
	KeyRunes                 // Printable text typed into the prompt
	KeyBackspace             // Erase the last rune of the pattern
	KeyClearPattern          // C-u, C-w
	KeyTogglePatternCase     // C-l: upper/lower case the pattern
	KeyCycleMatching         // C-e
	KeyToggleCase            // C-t
	KeyCycleView             // C-/
	KeyDirectoryView         // C-h
	KeyFavorite              // C-f: add to favorites, or choose in the favorites view
	KeyTag                   // C-b
	KeyDelete                // DEL
	KeyUp                    // Up, C-k, C-p
	KeyDown                  // Down, C-j, C-n
	KeyPageUp
	KeyPageDown
	KeyToList  // C-r: move from the prompt towards the list
	KeyExecute // Enter
	KeyEdit    // Tab, Right
	KeyFix     // Left
	KeyCancel  // Esc, C-g, C-x
)

// KeyEvent is one key press. Runes is set for KeyRunes only.
type KeyEvent struct {
	Key   Key
	Runes []rune
}

// Runes returns a KeyRunes event for s.
func Runes(s string) KeyEvent {
	return KeyEvent{Key: KeyRunes, Runes: []rune(s)}
}

// ActionKind tells the caller what to do after a key.
type ActionKind int

const (
	ActionContinue  ActionKind = iota // Keep reading keys
	ActionCommit                      // Leave with Action.Line
	ActionCancel                      // Leave without a result
	ActionPromptTag                   // Ask for a tag label, then call SubmitTag or CancelTag
)

// Action is the outcome of HandleKey.
type Action struct {
	Kind    ActionKind
	Line    string
	Execute bool // Run the line right away
	Edit    bool // Put the line on the command line for editing
	Fix     bool // Wrap the line as fc "line"
}

func continueAction() Action {
	return Action{Kind: ActionContinue}
}

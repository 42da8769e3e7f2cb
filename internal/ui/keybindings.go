package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// Printable keys belong to the search box, so quitting needs a control chord.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

// isUp and isDown accept j/k only where no text is being typed.
func isUp(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "up") || (vim && isKey(msg, "k"))
}

func isDown(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "down") || (vim && isKey(msg, "j"))
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isAccept(msg tea.KeyMsg) bool {
	return isKey(msg, "tab")
}

func isNextPage(msg tea.KeyMsg) bool {
	return isKey(msg, "pgdown", "ctrl+n")
}

func isPrevPage(msg tea.KeyMsg) bool {
	return isKey(msg, "pgup", "ctrl+p")
}

func isToggleBookmark(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

func isBookmarksPanel(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+b")
}

func isFullscreen(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+f", "f")
}

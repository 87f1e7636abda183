package cli

// history is the navigation stack of the REPL. Redirects replace the top
// entry so that back never lands on a view the user was bounced from.
type history struct {
	entries []string
}

func (h *history) current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

func (h *history) push(path string) {
	if h.current() == path {
		return
	}
	h.entries = append(h.entries, path)
}

func (h *history) replace(path string) {
	if len(h.entries) == 0 {
		h.entries = append(h.entries, path)
		return
	}
	h.entries[len(h.entries)-1] = path
	// collapse a duplicate left behind by the replacement
	if n := len(h.entries); n > 1 && h.entries[n-2] == path {
		h.entries = h.entries[:n-1]
	}
}

// back drops the top entry and returns the new one.
func (h *history) back() (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.current(), true
}

func (h *history) len() int { return len(h.entries) }

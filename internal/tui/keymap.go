package tui

// optionsKeys lists the keys the options dialog handles.
var optionsKeys = []string{"up", "k", "down", "j", "1", "2", "3", "r", "a", "enter", "q", "esc", "ctrl+c"}

// previewKeys lists the keys the preview dialog handles besides scrolling.
var previewKeys = []string{"y", "enter", "n", "esc", "q", "ctrl+c"}

// handles reports whether key is in keys.
func handles(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

package chi

// PosterResolver formats the display poster URL for an item. An empty
// poster path means the upstream had no artwork; the placeholder is
// served instead of a broken image link.
type PosterResolver struct {
	BaseURL     string
	Size        string
	Placeholder string
}

// URL returns the poster URL for a stored poster path.
func (p PosterResolver) URL(posterPath string) string {
	if posterPath == "" {
		return p.Placeholder
	}
	return p.BaseURL + p.Size + posterPath
}

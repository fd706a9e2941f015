// Package media holds the static songs and podcasts catalogues.
package media

// Item is one catalogue entry.
type Item struct {
	ID          string
	Title       string
	Description string
	Artwork     string
	Category    string
	Duration    string
	Mood        string
}

// Catalogue is a titled list shown on its own tab.
type Catalogue struct {
	Title    string
	Subtitle string
	Items    []Item
}

// Songs returns the trending songs catalogue.
func Songs() Catalogue {
	return Catalogue{
		Title:    "Trending songs",
		Subtitle: "Curated daily from social buzz + streaming charts.",
		Items: []Item{
			{
				ID:          "song-1",
				Title:       "Eternal Echo",
				Description: "A dreamy synthwave track dominating the chill charts this week.",
				Artwork:     "https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&w=300&q=60",
				Category:    "Synthwave • Nova Pulse",
				Duration:    "3m 42s",
				Mood:        "Night drive",
			},
			{
				ID:          "song-2",
				Title:       "Golden Hour Groove",
				Description: "Upbeat alt-pop bend with warm guitars and layered harmonies.",
				Artwork:     "https://images.unsplash.com/photo-1470225649543-e000d19af7ec?auto=format&fit=crop&w=300&q=60",
				Category:    "Alt Pop • Lumen",
				Duration:    "2m 58s",
				Mood:        "Feel good",
			},
			{
				ID:          "song-3",
				Title:       "Momentum",
				Description: "High energy instrumental perfect for gym or study focus.",
				Artwork:     "https://images.unsplash.com/photo-1454922915609-78549ad709bb?auto=format&fit=crop&w=300&q=60",
				Category:    "Instrumental • Flux",
				Duration:    "4m 15s",
				Mood:        "Motivation",
			},
		},
	}
}

// Podcasts returns the trending podcasts catalogue.
func Podcasts() Catalogue {
	return Catalogue{
		Title:    "Trending podcasts",
		Subtitle: "Hand-picked shows with the most buzz this week.",
		Items: []Item{
			{
				ID:          "pod-1",
				Title:       "Futurecraft Daily",
				Description: "8-minute breakdown of AI, startups, and UX experiments.",
				Artwork:     "https://images.unsplash.com/photo-1478737270239-2f02b77fc618?auto=format&fit=crop&w=300&q=60",
				Category:    "Tech Brief",
				Duration:    "8m",
				Mood:        "Daily bite",
			},
			{
				ID:          "pod-2",
				Title:       "Wellness Debrief",
				Description: "Interviews with neuroscientists and trainers on sustainable habits.",
				Artwork:     "https://images.unsplash.com/photo-1448932223592-d1fc686e76ea?auto=format&fit=crop&w=300&q=60",
				Category:    "Lifestyle",
				Duration:    "42m",
				Mood:        "Thoughtful",
			},
			{
				ID:          "pod-3",
				Title:       "Design Signals",
				Description: "Product leads breakdown delightful mobile experiences.",
				Artwork:     "https://images.unsplash.com/photo-1421757350652-9f65a35effc7?auto=format&fit=crop&w=300&q=60",
				Category:    "Product & UX",
				Duration:    "55m",
				Mood:        "Deep dive",
			},
		},
	}
}

// Meta joins the optional duration and mood for a list row.
func (i Item) Meta() string {
	switch {
	case i.Duration != "" && i.Mood != "":
		return i.Duration + " · " + i.Mood
	case i.Duration != "":
		return i.Duration
	default:
		return i.Mood
	}
}
